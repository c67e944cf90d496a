package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations,
// costs and byte limits.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // base64-encoded secret used to sign JWTs
	AccessTTLMin   int    // access token time‑to‑live in minutes
	RefreshTTLDays int    // refresh token time‑to‑live in days
	BcryptCost     int    // bcrypt cost for password hashing
	S3Endpoint     string // object storage endpoint (MinIO or S3-compatible)
	S3Region       string // object storage region
	S3AccessKey    string // object storage access key
	S3SecretKey    string // object storage secret key
	S3Bucket       string // bucket holding uploaded cover images
	S3PublicURL    string // public URL prefix prepended to object names
	MaxUploadBytes int64  // maximum accepted upload size in bytes
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The JWT secret is
// only checked for presence here; decoding it (and the fail-fast on
// malformed base64) happens when the token codec is built at startup.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),      // environment (dev/test/prod)
		Port:           must("APP_PORT"),     // port to bind the HTTP server
		DBUser:         must("DB_USER"),      // database user
		DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:         must("DB_HOST"),      // database host
		DBPort:         must("DB_PORT"),      // database port
		DBName:         must("DB_NAME"),      // database name
		JWTSecret:      must("JWT_SECRET"),   // base64 secret for signing JWTs
		AccessTTLMin:   intOr("ACCESS_TOKEN_TTL_MIN", 30),  // TTL for access tokens in minutes
		RefreshTTLDays: intOr("REFRESH_TOKEN_TTL_DAYS", 7), // TTL for refresh tokens in days
		BcryptCost:     mustInt("BCRYPT_COST"),             // bcrypt cost factor
		S3Endpoint:     must("S3_ENDPOINT"),   // e.g. http://localhost:9000 for MinIO
		S3Region:       must("S3_REGION"),     // region is mandatory for the SDK
		S3AccessKey:    must("S3_ACCESS_KEY"), // storage access key
		S3SecretKey:    must("S3_SECRET_KEY"), // storage secret key
		S3Bucket:       must("S3_BUCKET"),     // bucket for cover images
		S3PublicURL:    must("S3_PUBLIC_URL_PREFIX"),            // prefix of returned image URLs
		MaxUploadBytes: int64(intOr("MAX_UPLOAD_BYTES", 5<<20)), // default 5 MiB
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// intOr reads an optional integer variable, falling back to def when the
// variable is unset.  A present but unparsable value is still fatal.
func intOr(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
