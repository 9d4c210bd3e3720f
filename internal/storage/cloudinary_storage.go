package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// uploadAPI - часть uploader.API, которой пользуется хранилище.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStorage кладёт фото профиля в Cloudinary, по одному на пользователя.
type CloudinaryStorage struct {
	upload uploadAPI
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось инициализировать Cloudinary: %w", err)
	}
	return &CloudinaryStorage{upload: &cld.Upload, folder: folder}, nil
}

// Save перезаписывает фото пользователя и возвращает secure URL.
func (s *CloudinaryStorage) Save(ctx context.Context, userID uuid.UUID, jpeg []byte) (string, error) {
	result, err := s.upload.Upload(ctx, bytes.NewReader(jpeg), uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     userID.String(),
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("storage: ошибка загрузки в Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("storage: Cloudinary: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// Delete удаляет фото по URL вида .../upload/v123/<folder>/<id>.jpg.
func (s *CloudinaryStorage) Delete(ctx context.Context, url string) error {
	publicID := publicIDFromURL(url)
	if publicID == "" {
		return nil
	}
	if _, err := s.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: ошибка удаления из Cloudinary: %w", err)
	}
	return nil
}

func publicIDFromURL(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) > 1 && isVersion(parts[0]) {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	return id
}

func isVersion(segment string) bool {
	digits, ok := strings.CutPrefix(segment, "v")
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
