package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhotoStore хранит фотографии профилей и отдаёт URL для photo_url.
type PhotoStore interface {
	Save(ctx context.Context, userID uuid.UUID, jpeg []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// PublicPrefix - URL-префикс, под которым router раздаёт локальные файлы.
const PublicPrefix = "/media"

// PhotoStorage отвечает за файловое хранилище изображений.
type PhotoStorage struct {
	rootPath string
}

// NewPhotoStorage создаёт файловое хранилище.
func NewPhotoStorage(rootPath string) (*PhotoStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &PhotoStorage{rootPath: rootPath}, nil
}

func (s *PhotoStorage) Root() string {
	return s.rootPath
}

// Save записывает уже подготовленный JPEG и возвращает публичный URL.
func (s *PhotoStorage) Save(ctx context.Context, userID uuid.UUID, jpeg []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s_%d.jpg", userID.String(), time.Now().UnixNano())

	userDir := filepath.Join(s.rootPath, userID.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	targetPath := filepath.Join(userDir, fileName)
	tempPath := targetPath + ".tmp"

	if err := os.WriteFile(tempPath, jpeg, 0o644); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return path.Join(PublicPrefix, userID.String(), fileName), nil
}

// Delete удаляет файл из хранилища. URL не из этого хранилища игнорируются.
func (s *PhotoStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relative, ok := strings.CutPrefix(url, PublicPrefix+"/")
	if !ok || strings.Contains(relative, "..") {
		return nil
	}

	target := filepath.Join(s.rootPath, filepath.FromSlash(relative))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
