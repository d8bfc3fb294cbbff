// Package imaging turns user-supplied image files into the inline data URL
// payloads stored in blog_images.image_path and comments.image_path.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage   = errors.New("file is not an image")
	ErrEmpty      = errors.New("image is empty")
	ErrBadDataURL = errors.New("malformed data URL")
)

// Detect sniffs the content type of data and fails unless it is an image.
func Detect(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

// DataURL renders data as a base64 data URL of the given content type.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EncodeDataURL wraps an image file unchanged. Blog images are stored this
// way at their original size.
func EncodeDataURL(data []byte) (string, error) {
	ct, err := Detect(data)
	if err != nil {
		return "", err
	}
	return DataURL(ct, data), nil
}

// ParseDataURL splits a base64 data URL into content type and payload.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	ct, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return ct, data, nil
}

// Downsize decodes data, scales it down to at most maxWidth pixels wide
// keeping the aspect ratio, and re-encodes it as a JPEG data URL. Narrower
// images keep their size but are still re-encoded.
func Downsize(data []byte, maxWidth, quality int) (string, error) {
	if _, err := Detect(data); err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth > 0 && w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}

	// JPEG has no alpha; transparent pixels end up white
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return DataURL("image/jpeg", buf.Bytes()), nil
}
