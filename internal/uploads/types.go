package uploads

import (
	"errors"
	"github.com/frodejac/filedrop/internal/folder"
)

var ErrNoFiles = errors.New("no files in upload")

type Config struct {
	// MaxUploadBytes caps the whole request body.
	MaxUploadBytes int64
	// MaxMemory is how much of the form is kept in memory before parts
	// spill to temporary files.
	MaxMemory int64
	FieldName string
}

type UploadService struct {
	store  *folder.Store
	config *Config
}

// Batch is the outcome of one multi-file upload request.
type Batch struct {
	Results []folder.UploadResult
}
