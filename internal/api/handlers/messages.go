package handlers

import (
	"errors"
	"fmt"
	"github.com/frodejac/filedrop/internal/folder"
	"net/http"
	"unicode/utf8"
)

// statusFor maps a store error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, folder.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, folder.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, folder.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, folder.ErrDecode):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// describe turns a store error into text for the user. The wrapped cause is
// never shown since it may contain server paths.
func describe(err error) string {
	var storeErr *folder.Error
	name := ""
	if errors.As(err, &storeErr) {
		name = shortName(storeErr.Name)
	}
	switch {
	case errors.Is(err, folder.ErrNotFound):
		return fmt.Sprintf("File %s not found!", name)
	case errors.Is(err, folder.ErrInvalidName):
		return fmt.Sprintf("Invalid file name: %q", name)
	case errors.Is(err, folder.ErrAlreadyExists):
		return fmt.Sprintf("File %s already exists!", name)
	case errors.Is(err, folder.ErrDecode):
		return fmt.Sprintf("File %s is not a UTF-8 text file and cannot be edited.", name)
	default:
		return "Storage is unavailable, please try again later."
	}
}

const maxShownName = 64

// shortName keeps flash messages, which travel in a cookie, small.
func shortName(name string) string {
	if len(name) <= maxShownName {
		return name
	}
	cut := maxShownName
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut] + "..."
}
