package handlers

import (
	"fmt"
	"github.com/frodejac/filedrop/internal/folder"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// EditableExtensions lists the extensions offered for in-place editing.
// The store itself edits any file.
var EditableExtensions = []string{".txt"}

// previewKinds maps extensions to the inline preview shown in the list.
var previewKinds = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".mp4":  "video",
	".mp3":  "audio",
}

var previewTypes = map[string]string{
	".mp4": "video/mp4",
	".mp3": "audio/mpeg",
}

type FileView struct {
	Name        string
	Path        string
	Size        string
	Editable    bool
	Preview     string
	ContentType string
}

func newFileView(entry folder.Entry) FileView {
	ext := strings.ToLower(filepath.Ext(entry.Name))
	contentType, ok := previewTypes[ext]
	if !ok {
		contentType = folder.ContentType(entry.Name)
	}
	return FileView{
		Name:        entry.Name,
		Path:        url.PathEscape(entry.Name),
		Size:        humanSize(entry.Size),
		Editable:    slices.Contains(EditableExtensions, ext),
		Preview:     previewKinds[ext],
		ContentType: contentType,
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
