package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Krishna1199000/propalai-backend/internal/password"
	s3store "github.com/Krishna1199000/propalai-backend/internal/platform/s3"
	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/requestdata"
	"github.com/Krishna1199000/propalai-backend/internal/repos"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

// Me is the authenticated user's profile view, including what clients need
// to decide whether to offer password management.
type Me struct {
	User        *types.User `json:"user"`
	HasPassword bool        `json:"has_password"`
	Providers   []string    `json:"providers"`
}

type ProfileInput struct {
	ID       uuid.UUID
	Email    string
	Phone    *string
	Password *string
}

// PresignedUpload is everything a client needs to PUT an avatar straight to
// the blob store and then confirm it.
type PresignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}

type UserService interface {
	GetMe(ctx context.Context) (*Me, error)
	UpdateProfile(ctx context.Context, input ProfileInput) (*types.User, error)
	UploadProfileImage(ctx context.Context, raw []byte, contentType string) (*types.User, error)
	PresignProfileImage(ctx context.Context, contentType string, size int) (*PresignedUpload, error)
	ConfirmProfileImage(ctx context.Context, key string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	linked   repos.LinkedAccountRepo
	auth     AuthService
	blobs    s3store.BlobStore
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	linked repos.LinkedAccountRepo,
	auth AuthService,
	blobs s3store.BlobStore,
) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
		linked:   linked,
		auth:     auth,
		blobs:    blobs,
	}
}

func principal(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return rd.UserID, nil
}

func (us *userService) GetMe(ctx context.Context) (*Me, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	linked, err := us.linked.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	providers := make([]string, 0, len(linked))
	for _, la := range linked {
		providers = append(providers, la.Provider)
	}
	return &Me{
		User:        user,
		HasPassword: user.HasPassword(),
		Providers:   providers,
	}, nil
}

func (us *userService) UpdateProfile(ctx context.Context, input ProfileInput) (*types.User, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	// The body carries the target id; callers may only edit themselves.
	if input.ID != userID {
		return nil, fmt.Errorf("%w: cannot update another account", apperrors.ErrUnauthorized)
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrInvalidArgument)
	}

	update := repos.ProfileUpdate{Email: email}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		update.Phone = &phone
	}
	if input.Password != nil && *input.Password != "" {
		if res := password.Evaluate(*input.Password); !res.Valid {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, res.Message)
		}
		hash, err := us.auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	updated, err := us.userRepo.UpdateProfile(ctx, nil, userID, update)
	if err != nil {
		return nil, err
	}
	us.log.Info("Updated profile", "user_id", userID)
	return updated, nil
}

// UploadProfileImage replaces the stored avatar: best-effort delete of the
// previous blob, then upload, then persist the new reference. A failed
// delete only orphans the old object; it never blocks the new image.
func (us *userService) UploadProfileImage(ctx context.Context, raw []byte, contentType string) (*types.User, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s3store.ValidateUpload(len(raw), contentType); err != nil {
		return nil, err
	}

	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	if user.ProfileImageKey != "" {
		if err := us.blobs.Delete(ctx, user.ProfileImageKey); err != nil {
			us.log.Warn("Failed to delete previous profile image",
				"user_id", userID, "key", user.ProfileImageKey, "error", err)
		}
	}

	key, url, err := us.blobs.Upload(ctx, userID, raw, contentType)
	if err != nil {
		return nil, err
	}

	updated, err := us.userRepo.UpdateProfileImage(ctx, nil, userID, key, url)
	if err != nil {
		return nil, err
	}
	us.log.Info("Replaced profile image", "user_id", userID, "key", key)
	return updated, nil
}

// PresignProfileImage issues a short-lived signed URL so the client can PUT
// the image to the store directly, skipping this server for the bytes. The
// new key is not persisted until ConfirmProfileImage.
func (us *userService) PresignProfileImage(ctx context.Context, contentType string, size int) (*PresignedUpload, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s3store.ValidateUpload(size, contentType); err != nil {
		return nil, err
	}

	key := s3store.ObjectKey(userID, contentType)
	uploadURL, err := us.blobs.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, err
	}
	return &PresignedUpload{
		Key:       key,
		UploadURL: uploadURL,
		ImageURL:  us.blobs.PublicURL(key),
	}, nil
}

// ConfirmProfileImage records a key the client uploaded through a presigned
// URL. The key must sit under the caller's own prefix; anything else could
// point the profile at another user's object.
func (us *userService) ConfirmProfileImage(ctx context.Context, key string) (*types.User, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, s3store.OwnerPrefix(userID)) {
		return nil, fmt.Errorf("%w: image key does not belong to this account", apperrors.ErrInvalidArgument)
	}

	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfileImageKey != "" && user.ProfileImageKey != key {
		if err := us.blobs.Delete(ctx, user.ProfileImageKey); err != nil {
			us.log.Warn("Failed to delete previous profile image",
				"user_id", userID, "key", user.ProfileImageKey, "error", err)
		}
	}

	updated, err := us.userRepo.UpdateProfileImage(ctx, nil, userID, key, us.blobs.PublicURL(key))
	if err != nil {
		return nil, err
	}
	us.log.Info("Confirmed profile image", "user_id", userID, "key", key)
	return updated, nil
}
