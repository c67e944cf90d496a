package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("cover.PNG")
	require.True(t, strings.HasSuffix(name, ".PNG"))

	_, err := uuid.Parse(strings.TrimSuffix(name, ".PNG"))
	assert.NoError(t, err, "object name must start with a uuid")

	// Two uploads of the same filename never collide.
	assert.NotEqual(t, name, ObjectName("cover.PNG"))

	// No extension is fine; the name is just the uuid.
	bare := ObjectName("cover")
	_, err = uuid.Parse(bare)
	assert.NoError(t, err)
}

func TestObjectNameFromURL(t *testing.T) {
	const prefix = "http://localhost:9000/book-images/"

	cases := map[string]string{
		prefix + "abc.png":                "abc.png",
		"http://other.host/bucket/x.jpg": "x.jpg",
		"plainname.png":                  "plainname.png",
		"":                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, objectNameFromURL(prefix, in), "url %q", in)
	}
}
