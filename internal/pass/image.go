package pass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// ErrNotImage is returned when a data URL does not carry an image.
var ErrNotImage = errors.New("data url is not an image")

// Image is a decoded data-URL image.
type Image struct {
	ContentType string
	Data        []byte
}

// DecodeImage decodes a "data:image/...;base64," URL as captured by the
// registration form's photo and signature widgets.
func DecodeImage(s string) (*Image, error) {
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	if du.Type != "image" {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, du.ContentType())
	}
	return &Image{ContentType: du.ContentType(), Data: du.Data}, nil
}

// IsRaster reports whether contentType is a PNG, JPEG or GIF image, the
// formats the pass can embed and the admin panel serves.
func IsRaster(contentType string) bool {
	_, ok := fpdfType(contentType)
	return ok
}

// fpdfType maps a content type onto the image type names fpdf understands.
func fpdfType(contentType string) (string, bool) {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "PNG", true
	case "image/jpeg", "image/jpg":
		return "JPG", true
	case "image/gif":
		return "GIF", true
	}
	return "", false
}
