package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/storage"
	"github.com/swapo-org/swapo-backend/internal/validation"
)

// ProfileUpdate - nil означает "не менять".
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Location  *string
}

// ProfileService управляет собственным профилем и фото.
type ProfileService struct {
	users          repository.UserRepository
	photos         storage.PhotoStore
	maxUploadBytes int64
	maxPhotoSide   uint
}

func NewProfileService(users repository.UserRepository, photos storage.PhotoStore, maxUploadMB int64, maxPhotoSide uint) *ProfileService {
	return &ProfileService{
		users:          users,
		photos:         photos,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		maxPhotoSide:   maxPhotoSide,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (*entity.User, error) {
	if in.FirstName != nil {
		if err := validation.ValidateName("имя", *in.FirstName); err != nil {
			return nil, err
		}
	}
	if in.LastName != nil {
		if err := validation.ValidateName("фамилия", *in.LastName); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		return nil, err
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(in.FirstName, in.LastName, in.Bio, in.Location)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadPhoto проверяет и уменьшает изображение, сохраняет его и
// записывает URL в профиль. Старое фото удаляется после успешной записи.
func (s *ProfileService) UploadPhoto(ctx context.Context, userID uuid.UUID, r io.Reader) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := storage.ReadLimited(r, s.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	jpeg, err := storage.PrepareImage(data, s.maxPhotoSide)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.Save(ctx, userID, jpeg)
	if err != nil {
		return nil, err
	}

	var previous string
	if user.PhotoURL != nil {
		previous = *user.PhotoURL
	}
	user.SetPhoto(url)
	if err := s.users.Update(ctx, user); err != nil {
		_ = s.photos.Delete(ctx, url)
		return nil, err
	}

	if previous != "" && previous != url {
		if err := s.photos.Delete(ctx, previous); err != nil {
			logger.Log.WithError(err).WithField("user_id", userID).Warn("не удалось удалить старое фото")
		}
	}
	return user, nil
}
