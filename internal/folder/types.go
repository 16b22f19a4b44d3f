package folder

import (
	"github.com/spf13/afero"
	"io"
	"time"
)

type Config struct {
	// Root is the directory holding every entry. It is created when missing.
	Root string
	// Fs is the file system Root lives on. Nil means the OS file system.
	Fs afero.Fs
	// NoClobber makes uploads and renames fail with ErrAlreadyExists
	// instead of replacing an existing file.
	NoClobber bool
	// LockNames serializes mutations of the same name inside this process.
	LockNames bool
	// Workers bounds how many files of a batch upload are written at once.
	Workers int
}

type Store struct {
	config  *Config
	root    string
	fs      afero.Fs
	locks   locker
	workers int
	// link creates a hard link between OS paths, nil when the store is not
	// backed by the OS file system.
	link func(oldname, newname string) error
}

// Entry is a regular file directly under the root directory.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

type Download struct {
	Entry
	ContentType string
	File        afero.File
}

// Payload is one file of a batch upload. Open is called at most once.
type Payload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

type UploadResult struct {
	Name  string
	Entry Entry
	Err   error
}
