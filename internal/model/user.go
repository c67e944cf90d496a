package model

import "time"

// User represents a row of the `user_table`.  The json tags are omitted
// because these structs are used internally by the repository layer; the
// handlers define separate response types with appropriate JSON shapes.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – unique display name.
//  Email        – unique login email.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update (nullable).
//  DeletedAt    – soft-delete marker (nullable, currently unused).
type User struct {
	ID           uint64     // user_table.id
	Name         string     // user_table.name
	Email        string     // user_table.email
	PasswordHash string     // user_table.password
	CreatedAt    time.Time  // user_table.created_at
	UpdatedAt    *time.Time // user_table.updated_at (nullable)
	DeletedAt    *time.Time // user_table.deleted_at (nullable)
}
