package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/healthify-app/healthify-api/internal/httperr"
)

// Storage persists profile photos and returns a stable reference
// path. Implementations must only expose a path once the bytes are
// fully written.
type Storage interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, path string) error
}

const (
	MaxPhotoBytes = 5 * 1024 * 1024
	maxDimension  = 1024
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// processUpload validates the upload and returns the encoded bytes
// together with the generated object name.
func processUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	if fh.Size > MaxPhotoBytes {
		return nil, "", httperr.ErrBusiness("file_too_large")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return nil, "", httperr.ErrBusiness("unsupported_file_type")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, MaxPhotoBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(raw) > MaxPhotoBytes {
		return nil, "", httperr.ErrBusiness("file_too_large")
	}

	// Decode for real instead of trusting the extension.
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", httperr.ErrBusiness("unsupported_file_type")
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	if b := img.Bounds(); b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return raw, name, nil
	}

	resized := downscale(img)
	encoded, err := encode(resized, format)
	if err != nil {
		return nil, "", err
	}
	return encoded, name, nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w >= h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: 85})
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
