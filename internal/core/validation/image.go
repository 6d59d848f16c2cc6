package validation

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

// MaxImageBytes is the cover image size ceiling.
const MaxImageBytes = 1_000_000

var imageTypes = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"gif":  {},
}

// Image checks a cover upload before anything is written to storage: it must
// be present, no larger than maxBytes, and both its extension and its sniffed
// content type must be one of jpeg, jpg, png or gif.
func Image(img *ports.ImageUpload, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxImageBytes
	}
	if img == nil || len(img.Data) == 0 {
		return domain.Invalid("myImage", "No file Selected", nil)
	}
	if int64(len(img.Data)) > maxBytes {
		return domain.Invalid("myImage", "File too large", img.Filename)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(img.Filename)), ".")
	sniffed := mimetype.Detect(img.Data)
	if !isImageType(ext) || !isImageMIME(sniffed.String()) {
		return domain.Invalid("myImage", "Error: Images Only!", img.Filename)
	}
	img.ContentType = sniffed.String()
	return nil
}

func isImageType(ext string) bool {
	_, ok := imageTypes[ext]
	return ok
}

func isImageMIME(mime string) bool {
	sub, ok := strings.CutPrefix(mime, "image/")
	return ok && isImageType(sub)
}
