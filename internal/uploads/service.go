package uploads

import (
	"errors"
	"fmt"
	"github.com/frodejac/filedrop/internal/folder"
	"io"
	"mime/multipart"
	"net/http"
)

const (
	defaultMaxUploadBytes = 1 << 30
	defaultMaxMemory      = 32 << 20
	defaultFieldName      = "file"
)

func NewUploadService(store *folder.Store, cfg *Config) *UploadService {
	if cfg == nil {
		cfg = &Config{}
	}
	config := *cfg
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = defaultMaxUploadBytes
	}
	if config.MaxMemory <= 0 {
		config.MaxMemory = defaultMaxMemory
	}
	if config.FieldName == "" {
		config.FieldName = defaultFieldName
	}
	return &UploadService{
		store:  store,
		config: &config,
	}
}

// Upload stores every file part of the request. Parts are written
// independently: the returned batch carries one result per part, and an
// error is returned only when the form itself cannot be read.
func (u *UploadService) Upload(w http.ResponseWriter, r *http.Request) (*Batch, error) {
	r.Body = http.MaxBytesReader(w, r.Body, u.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(u.config.MaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("upload exceeds %d bytes: %w", tooLarge.Limit, err)
		}
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[u.config.FieldName]
	payloads := make([]folder.Payload, 0, len(headers))
	for _, header := range headers {
		// Browsers send an empty part when no file was chosen.
		if header.Filename == "" && header.Size == 0 {
			continue
		}
		payloads = append(payloads, payloadFromHeader(header))
	}
	if len(payloads) == 0 {
		return nil, ErrNoFiles
	}
	return &Batch{Results: u.store.UploadAll(payloads)}, nil
}

func payloadFromHeader(header *multipart.FileHeader) folder.Payload {
	return folder.Payload{
		Name: header.Filename,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

func (b *Batch) Succeeded() []folder.UploadResult {
	return b.filter(func(res folder.UploadResult) bool { return res.Err == nil })
}

func (b *Batch) Failed() []folder.UploadResult {
	return b.filter(func(res folder.UploadResult) bool { return res.Err != nil })
}

func (b *Batch) filter(keep func(folder.UploadResult) bool) []folder.UploadResult {
	out := make([]folder.UploadResult, 0, len(b.Results))
	for _, res := range b.Results {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out
}
