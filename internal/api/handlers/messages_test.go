package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/frodejac/filedrop/internal/folder"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind error
		want int
	}{
		{folder.ErrNotFound, http.StatusNotFound},
		{folder.ErrInvalidName, http.StatusBadRequest},
		{folder.ErrAlreadyExists, http.StatusConflict},
		{folder.ErrDecode, http.StatusUnsupportedMediaType},
		{folder.ErrStorageUnavailable, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		err := &folder.Error{Op: "open", Name: "a.txt", Kind: tt.kind}
		assert.Equal(t, tt.want, statusFor(err), tt.kind.Error())
	}
	assert.Equal(t, http.StatusOK, statusFor(nil))
}

func TestDescribeHidesCause(t *testing.T) {
	err := &folder.Error{
		Op:   "list",
		Kind: folder.ErrStorageUnavailable,
		Err:  errors.New("open /srv/secret/Files: permission denied"),
	}
	assert.NotContains(t, describe(err), "/srv/secret")

	err = &folder.Error{Op: "open", Name: "a.txt", Kind: folder.ErrNotFound}
	assert.Equal(t, "File a.txt not found!", describe(err))
}

func TestNewFileView(t *testing.T) {
	v := newFileView(folder.Entry{Name: "My Notes.TXT", Size: 2048, ModTime: time.Now()})
	assert.Equal(t, "My%20Notes.TXT", v.Path)
	assert.True(t, v.Editable)
	assert.Equal(t, "", v.Preview)
	assert.Equal(t, "2.0 KiB", v.Size)

	v = newFileView(folder.Entry{Name: "clip.mp4"})
	assert.False(t, v.Editable)
	assert.Equal(t, "video", v.Preview)
	assert.Equal(t, "video/mp4", v.ContentType)
	assert.Equal(t, "0 B", v.Size)

	v = newFileView(folder.Entry{Name: "a#b?.jpg"})
	assert.Equal(t, "image", v.Preview)
	assert.Equal(t, "a%23b%3F.jpg", v.Path)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "a.txt", shortName("a.txt"))

	long := strings.Repeat("ж", 100)
	short := shortName(long)
	assert.True(t, strings.HasSuffix(short, "..."))
	assert.LessOrEqual(t, len(short), maxShownName+3)
	assert.True(t, utf8.ValidString(short))

	err := &folder.Error{Op: "upload", Name: strings.Repeat("y", 300), Kind: folder.ErrInvalidName}
	assert.Less(t, len(describe(err)), 100)
}
