package folder

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// stagingPrefix marks in-flight upload files. Names with this prefix are
	// never listed and cannot be addressed by clients.
	stagingPrefix = ".filedrop-"
	maxNameLength = 255
	defaultType   = "application/octet-stream"
)

// ValidateName checks that name is a single path element that stays inside
// the root directory. Names are rejected, never rewritten.
func ValidateName(name string) error {
	return checkName("validate", name)
}

func checkName(op, name string) error {
	var reason string
	switch {
	case name == "":
		reason = "name is empty"
	case name == "." || name == "..":
		reason = "name refers to a directory"
	case len(name) > maxNameLength:
		reason = "name is longer than 255 bytes"
	case strings.ContainsAny(name, `/\`):
		reason = "name contains a path separator"
	case strings.ContainsRune(name, 0):
		reason = "name contains a NUL byte"
	case !utf8.ValidString(name):
		reason = "name is not valid UTF-8"
	case isStaging(name):
		reason = "name uses a reserved prefix"
	default:
		return nil
	}
	return newError(op, name, ErrInvalidName, errors.New(reason))
}

func isStaging(name string) bool {
	return strings.HasPrefix(name, stagingPrefix)
}

// ContentType infers a MIME type from the extension of name. The bytes of
// the file are never inspected.
func ContentType(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return defaultType
}
