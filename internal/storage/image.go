package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/h2non/filetype"
	"github.com/nfnt/resize"

	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// Разрешённые типы изображений. Всё перекодируется в JPEG.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var (
	ErrImageTooLarge  = apperror.Validation("image_too_large", "размер файла превышает лимит")
	ErrImageEmpty     = apperror.Validation("image_empty", "файл не может быть пустым")
	ErrImageType      = apperror.Validation("invalid_image_type", "разрешены только изображения JPEG, PNG и GIF")
	ErrImageCorrupted = apperror.Validation("invalid_image", "не удалось прочитать изображение")
)

const jpegQuality = 85

// ReadLimited читает не больше maxBytes байт.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать файл")
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, ErrImageEmpty
	}
	return data, nil
}

// PrepareImage проверяет реальный тип файла по магическим байтам,
// уменьшает изображение до maxSide по большей стороне и кодирует в JPEG.
func PrepareImage(data []byte, maxSide uint) ([]byte, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		return nil, ErrImageType
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrImageCorrupted
	}

	if maxSide > 0 {
		b := img.Bounds()
		if uint(b.Dx()) > maxSide || uint(b.Dy()) > maxSide {
			img = resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось закодировать изображение")
	}
	return buf.Bytes(), nil
}
