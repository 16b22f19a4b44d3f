package folder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "simple", input: "notes.txt", valid: true},
		{name: "spaces and unicode", input: "звіт 2024.txt", valid: true},
		{name: "dotfile", input: ".hidden", valid: true},
		{name: "dots inside", input: "a..b.txt", valid: true},
		{name: "empty", input: ""},
		{name: "dot", input: "."},
		{name: "dot dot", input: ".."},
		{name: "traversal", input: "../../etc/passwd"},
		{name: "absolute", input: "/etc/passwd"},
		{name: "nested", input: "dir/file.txt"},
		{name: "backslash", input: `..\file.txt`},
		{name: "nul byte", input: "a\x00b"},
		{name: "invalid utf8", input: "caf\xe9"},
		{name: "too long", input: strings.Repeat("a", 256)},
		{name: "max length", input: strings.Repeat("a", 255), valid: true},
		{name: "staging prefix", input: stagingPrefix + "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidName)
			var storeErr *Error
			assert.True(t, errors.As(err, &storeErr))
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "a.png", expected: "image/png"},
		{input: "a.JPG", expected: "image/jpeg"},
		{input: "a.unknownext", expected: "application/octet-stream"},
		{input: "no-extension", expected: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContentType(tt.input))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "not_found", Kind(newError("open", "a", ErrNotFound, nil)))
	assert.Equal(t, "invalid_name", Kind(ValidateName("..")))
	assert.Equal(t, "decode_error", Kind(newError("read", "a", ErrDecode, nil)))
	assert.Equal(t, "already_exists", Kind(newError("upload", "a", ErrAlreadyExists, nil)))
	assert.Equal(t, "storage_unavailable", Kind(fmt.Errorf("wrapped: %w", newError("list", "", ErrStorageUnavailable, errors.New("eio")))))
	assert.Equal(t, "internal", Kind(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	err := newError("rename", "a.txt", ErrNotFound, errors.New("no such file"))
	assert.Equal(t, `rename "a.txt": file not found: no such file`, err.Error())

	err = newError("list", "", ErrStorageUnavailable, nil)
	assert.Equal(t, "list: storage unavailable", err.Error())
}
