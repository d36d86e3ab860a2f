package id

import (
	"strings"

	"github.com/google/uuid"
)

// Prefixes for generated ids.
const (
	FolderPrefix = "fld_"
	ViewPrefix   = "view_"
)

// UUID generates a random UUID v4 string.
func UUID() string {
	return uuid.NewString()
}

// Short returns the first 12 hex characters of a random UUID.
func Short() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Folder returns a new folder id.
func Folder() string {
	return FolderPrefix + Short()
}

// View returns a new view id.
func View() string {
	return ViewPrefix + Short()
}
