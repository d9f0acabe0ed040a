// Package storage abstracts the private image bucket: uploads that never
// overwrite an existing object, and short-lived signed read URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrObjectExists is returned when an upload targets a key that is already
// occupied. Existing objects are never overwritten.
var ErrObjectExists = errors.New("object already exists")

type ObjectStorage interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) error
	SignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ObjectPath builds the bucket key for a note image. Keys are namespaced by
// owner and note so they cannot collide across users or notes. The filename
// is reduced to its base name to keep the key inside that namespace.
func ObjectPath(userID, noteID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return userID + "/" + noteID + "/" + name
}
