// file: internals/services/storage/convert_image.go
package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	// attachments wider than this get scaled down before encoding
	maxImageWidth = 1600
	webpQuality   = 80
)

func isConvertibleImage(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}

// convertToWebP re-encodes an uploaded image as WebP, scaling oversized ones.
// Returns ok=false when the payload cannot be decoded; the caller then stores
// the original bytes untouched.
func convertToWebP(r io.Reader, size int64) ([]byte, string, bool) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, "", false
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Fit(img, maxImageWidth, maxImageWidth*4, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		log.Printf("webp encode failed, keeping original: %v", err)
		return nil, "", false
	}
	return buf.Bytes(), "image/webp", true
}
