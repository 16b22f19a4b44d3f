package folder

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dirPerm  = 0755
	filePerm = 0644

	defaultWorkers = 4
)

func New(config *Config) (*Store, error) {
	if config == nil || config.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	base := config.Fs
	if base == nil {
		base = afero.NewOsFs()
	}
	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	// Create root directory if it doesn't exist
	if err := base.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create root directory: %w", err)
	}

	store := &Store{
		config:  config,
		root:    root,
		fs:      afero.NewBasePathFs(base, root),
		locks:   nopLocker{},
		workers: config.Workers,
	}
	// No-clobber checks race with each other unless the names are locked.
	// The lock only covers this process; hard links close the gap across
	// processes on the OS file system.
	if config.LockNames || config.NoClobber {
		store.locks = newNameLocker()
	}
	if _, ok := base.(*afero.OsFs); ok {
		store.link = os.Link
	}
	if store.workers <= 0 {
		store.workers = defaultWorkers
	}
	return store, nil
}

// Root returns the absolute path of the managed directory.
func (s *Store) Root() string {
	return s.root
}

// List returns the entries whose name contains query, ignoring case. An
// empty query matches every entry. Entries are sorted by name.
func (s *Store) List(query string) ([]Entry, error) {
	infos, err := afero.ReadDir(s.fs, string(filepath.Separator))
	if err != nil {
		return nil, newError("list", "", ErrStorageUnavailable, err)
	}

	query = strings.ToLower(query)
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() || isStaging(info.Name()) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(info.Name()), query) {
			continue
		}
		entries = append(entries, entryFromInfo(info.Name(), info))
	}
	return entries, nil
}

// Upload writes the content of r to name, replacing any existing file
// unless the store was configured with NoClobber.
func (s *Store) Upload(name string, r io.Reader) (Entry, error) {
	if err := checkName("upload", name); err != nil {
		return Entry{}, err
	}
	defer s.locks.lock(name)()

	if err := s.checkTarget("upload", name, s.config.NoClobber); err != nil {
		return Entry{}, err
	}
	entry, err := s.replace("upload", name, r, s.config.NoClobber)
	if err != nil {
		return Entry{}, err
	}
	log.Debug().Str("name", name).Int64("size", entry.Size).Msg("File uploaded")
	return entry, nil
}

func (s *Store) Stat(name string) (Entry, error) {
	if err := checkName("stat", name); err != nil {
		return Entry{}, err
	}
	info, err := s.stat("stat", name)
	if err != nil {
		return Entry{}, err
	}
	return entryFromInfo(name, info), nil
}

// Open returns the named file for streaming. The caller must close File.
func (s *Store) Open(name string) (*Download, error) {
	if err := checkName("open", name); err != nil {
		return nil, err
	}
	if _, err := s.stat("open", name); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(s.path(name))
	if err != nil {
		return nil, fsError("open", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fsError("open", name, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, newError("open", name, ErrNotFound, errors.New("not a regular file"))
	}
	return &Download{
		Entry:       entryFromInfo(name, info),
		ContentType: ContentType(name),
		File:        f,
	}, nil
}

// ReadText returns the whole content of name as text.
func (s *Store) ReadText(name string) (string, error) {
	if err := checkName("read", name); err != nil {
		return "", err
	}
	if _, err := s.stat("read", name); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		return "", fsError("read", name, err)
	}
	if !utf8.Valid(data) {
		return "", newError("read", name, ErrDecode, nil)
	}
	return string(data), nil
}

// WriteText replaces the whole content of name with content. The file is
// created if it no longer exists.
func (s *Store) WriteText(name, content string) (Entry, error) {
	if err := checkName("write", name); err != nil {
		return Entry{}, err
	}
	defer s.locks.lock(name)()

	if err := s.checkTarget("write", name, false); err != nil {
		return Entry{}, err
	}
	entry, err := s.replace("write", name, strings.NewReader(content), false)
	if err != nil {
		return Entry{}, err
	}
	log.Debug().Str("name", name).Int64("size", entry.Size).Msg("File written")
	return entry, nil
}

func (s *Store) Delete(name string) error {
	if err := checkName("delete", name); err != nil {
		return err
	}
	defer s.locks.lock(name)()

	if _, err := s.stat("delete", name); err != nil {
		return err
	}
	if err := s.fs.Remove(s.path(name)); err != nil {
		return fsError("delete", name, err)
	}
	log.Debug().Str("name", name).Msg("File deleted")
	return nil
}

// Rename moves oldName to newName. An existing newName is replaced unless
// the store was configured with NoClobber.
func (s *Store) Rename(oldName, newName string) (Entry, error) {
	if err := checkName("rename", oldName); err != nil {
		return Entry{}, err
	}
	if err := checkName("rename", newName); err != nil {
		return Entry{}, err
	}
	defer s.locks.lock(oldName, newName)()

	info, err := s.stat("rename", oldName)
	if err != nil {
		return Entry{}, err
	}
	if oldName == newName {
		return entryFromInfo(newName, info), nil
	}
	if err := s.checkTarget("rename", newName, s.config.NoClobber); err != nil {
		return Entry{}, err
	}
	if err := s.move("rename", s.path(oldName), newName, s.config.NoClobber); err != nil {
		return Entry{}, err
	}
	log.Debug().Str("name", oldName).Str("new_name", newName).Msg("File renamed")
	return entryFromInfo(newName, info), nil
}

// replace streams r into a staging file and moves it to name, so readers
// only ever see the previous or the complete new content.
func (s *Store) replace(op, name string, r io.Reader, noClobber bool) (Entry, error) {
	tmp, err := afero.TempFile(s.fs, string(filepath.Separator), stagingPrefix+"*")
	if err != nil {
		return Entry{}, newError(op, name, ErrStorageUnavailable, err)
	}
	staged := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = s.fs.Chmod(staged, filePerm)
	}
	if err != nil {
		_ = s.fs.Remove(staged)
		return Entry{}, newError(op, name, ErrStorageUnavailable, err)
	}
	if err := s.move(op, staged, name, noClobber); err != nil {
		_ = s.fs.Remove(staged)
		return Entry{}, err
	}

	entry := Entry{Name: name, Size: n, ModTime: time.Now()}
	if info, err := s.fs.Stat(s.path(name)); err == nil {
		entry = entryFromInfo(name, info)
	}
	return entry, nil
}

// move renames the file at from to name. With noClobber set an existing
// name is never replaced: on the OS file system the file is hard linked to
// name, which fails atomically when name exists, and from is removed after.
// Other file systems rely on the name lock held by the caller.
func (s *Store) move(op, from, name string, noClobber bool) error {
	if !noClobber {
		if err := s.fs.Rename(from, s.path(name)); err != nil {
			return fsError(op, name, err)
		}
		return nil
	}
	if s.link == nil {
		if err := s.checkTarget(op, name, true); err != nil {
			return err
		}
		if err := s.fs.Rename(from, s.path(name)); err != nil {
			return fsError(op, name, err)
		}
		return nil
	}

	if err := s.link(s.realPath(from), s.realPath(s.path(name))); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return newError(op, name, ErrAlreadyExists, nil)
		}
		return newError(op, name, ErrStorageUnavailable, err)
	}
	if err := s.fs.Remove(from); err != nil {
		if isStaging(filepath.Base(from)) {
			// Published already; a leftover staging file stays hidden.
			log.Warn().Err(err).Str("name", name).Msg("Failed to remove staging file")
			return nil
		}
		return newError(op, name, ErrStorageUnavailable, err)
	}
	return nil
}

// checkTarget fails when name exists and either is not a regular file or
// must not be replaced.
func (s *Store) checkTarget(op, name string, noClobber bool) error {
	info, err := s.lstat(s.path(name))
	if err != nil {
		return nil
	}
	if !info.Mode().IsRegular() {
		return newError(op, name, ErrAlreadyExists, errors.New("target is not a regular file"))
	}
	if noClobber {
		return newError(op, name, ErrAlreadyExists, nil)
	}
	return nil
}

// stat returns the info of name, treating anything other than a regular
// file as absent.
func (s *Store) stat(op, name string) (os.FileInfo, error) {
	info, err := s.lstat(s.path(name))
	if err != nil {
		return nil, fsError(op, name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, newError(op, name, ErrNotFound, errors.New("not a regular file"))
	}
	return info, nil
}

func (s *Store) lstat(path string) (os.FileInfo, error) {
	if l, ok := s.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return s.fs.Stat(path)
}

func (s *Store) path(name string) string {
	return string(filepath.Separator) + name
}

// realPath maps a path inside the fenced file system to the OS path.
func (s *Store) realPath(path string) string {
	return filepath.Join(s.root, path)
}

func entryFromInfo(name string, info os.FileInfo) Entry {
	return Entry{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
