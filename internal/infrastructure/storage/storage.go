// Package storage holds the cover-image stores. Images are saved under a
// generated name that keeps the upload field name and the original extension.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fieldName = "myImage"

// objectName returns "myImage-<uuid><ext>" for an uploaded filename.
func objectName(filename string) string {
	return fieldName + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}
