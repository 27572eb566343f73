package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	s3store "github.com/Krishna1199000/propalai-backend/internal/platform/s3"
	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/requestdata"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

func newTestUserService(users *fakeUserRepo, linked *fakeLinkedAccountRepo, blobs *fakeBlobStore) UserService {
	log := logger.NewNop()
	auth := NewAuthService(nil, log, users, newFakeUserTokenRepo(), linked, nil, "test-secret", 0, 0)
	return NewUserService(nil, log, users, linked, auth, blobs)
}

func authedCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func seedFakeUser(t *testing.T, users *fakeUserRepo, withPassword bool) *types.User {
	t.Helper()
	user := &types.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "user@example.com",
	}
	if withPassword {
		hash, err := bcrypt.GenerateFromPassword([]byte("Aa1!aaaa"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		user.Password = string(hash)
	}
	if _, err := users.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserServiceGetMe(t *testing.T) {
	users := newFakeUserRepo()
	linked := newFakeLinkedAccountRepo()
	svc := newTestUserService(users, linked, &fakeBlobStore{})

	user := seedFakeUser(t, users, false)
	if _, err := linked.Link(context.Background(), nil, user.ID, "google", "sub-123"); err != nil {
		t.Fatalf("link: %v", err)
	}

	me, err := svc.GetMe(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetMe: %v", err)
	}
	if me.HasPassword {
		t.Fatal("expected has_password=false for oauth-only account")
	}
	if len(me.Providers) != 1 || me.Providers[0] != "google" {
		t.Fatalf("expected providers [google], got %v", me.Providers)
	}
}

func TestUserServiceGetMeUnauthenticated(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), newFakeLinkedAccountRepo(), &fakeBlobStore{})
	if _, err := svc.GetMe(context.Background()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserServiceUpdateProfileKeepsHashWithoutPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), &fakeBlobStore{})
	user := seedFakeUser(t, users, true)
	originalHash := user.Password

	phone := "+1 555 0100"
	updated, err := svc.UpdateProfile(authedCtx(user.ID), ProfileInput{
		ID:    user.ID,
		Email: "new@example.com",
		Phone: &phone,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Fatalf("email = %q", updated.Email)
	}
	if updated.Phone != phone {
		t.Fatalf("phone = %q", updated.Phone)
	}
	if updated.Password != originalHash {
		t.Fatal("password hash changed on a password-less update")
	}
}

func TestUserServiceUpdateProfileRehashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), &fakeBlobStore{})
	user := seedFakeUser(t, users, true)
	originalHash := user.Password

	newPassword := "Bb2@bbbb"
	updated, err := svc.UpdateProfile(authedCtx(user.ID), ProfileInput{
		ID:       user.ID,
		Email:    user.Email,
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Password == originalHash {
		t.Fatal("expected a new password hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestUserServiceUpdateProfileRejectsWeakPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), &fakeBlobStore{})
	user := seedFakeUser(t, users, true)

	weak := "short"
	_, err := svc.UpdateProfile(authedCtx(user.ID), ProfileInput{
		ID:       user.ID,
		Email:    user.Email,
		Password: &weak,
	})
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestUserServiceUpdateProfileOtherAccount(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), &fakeBlobStore{})
	user := seedFakeUser(t, users, true)

	_, err := svc.UpdateProfile(authedCtx(user.ID), ProfileInput{
		ID:    uuid.New(),
		Email: "other@example.com",
	})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserServiceUploadProfileImage(t *testing.T) {
	users := newFakeUserRepo()
	blobs := &fakeBlobStore{}
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), blobs)
	user := seedFakeUser(t, users, true)

	updated, err := svc.UploadProfileImage(authedCtx(user.ID), []byte("png bytes"), "image/png")
	if err != nil {
		t.Fatalf("UploadProfileImage: %v", err)
	}
	if blobs.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", blobs.uploads)
	}
	if updated.ProfileImageKey != blobs.lastKey {
		t.Fatalf("stored key %q, uploaded key %q", updated.ProfileImageKey, blobs.lastKey)
	}
	if updated.ProfileImageURL == "" {
		t.Fatal("expected a public url")
	}
	if len(blobs.deletes) != 0 {
		t.Fatalf("no previous image; deletes = %v", blobs.deletes)
	}
}

func TestUserServiceUploadReplacesPreviousImage(t *testing.T) {
	users := newFakeUserRepo()
	blobs := &fakeBlobStore{}
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), blobs)
	user := seedFakeUser(t, users, true)

	if _, err := svc.UploadProfileImage(authedCtx(user.ID), []byte("one"), "image/png"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	firstKey := blobs.lastKey
	if _, err := svc.UploadProfileImage(authedCtx(user.ID), []byte("two"), "image/jpeg"); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if len(blobs.deletes) != 1 || blobs.deletes[0] != firstKey {
		t.Fatalf("deletes = %v, want [%s]", blobs.deletes, firstKey)
	}
}

func TestUserServiceUploadToleratesDeleteFailure(t *testing.T) {
	users := newFakeUserRepo()
	blobs := &fakeBlobStore{failDelete: true}
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), blobs)
	user := seedFakeUser(t, users, true)

	if _, err := svc.UploadProfileImage(authedCtx(user.ID), []byte("one"), "image/png"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	updated, err := svc.UploadProfileImage(authedCtx(user.ID), []byte("two"), "image/png")
	if err != nil {
		t.Fatalf("upload after failed delete: %v", err)
	}
	if blobs.uploads != 2 {
		t.Fatalf("uploads = %d, want 2", blobs.uploads)
	}
	if updated.ProfileImageKey != blobs.lastKey {
		t.Fatal("new image reference was not persisted")
	}
}

func TestUserServicePresignProfileImage(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), &fakeBlobStore{})
	user := seedFakeUser(t, users, true)

	presigned, err := svc.PresignProfileImage(authedCtx(user.ID), "image/png", 1024)
	if err != nil {
		t.Fatalf("PresignProfileImage: %v", err)
	}
	if !strings.HasPrefix(presigned.Key, s3store.OwnerPrefix(user.ID)) {
		t.Fatalf("key %q not under the caller's prefix", presigned.Key)
	}
	if presigned.UploadURL == "" || presigned.ImageURL == "" {
		t.Fatalf("presigned = %+v", presigned)
	}

	if _, err := svc.PresignProfileImage(authedCtx(user.ID), "application/pdf", 1024); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("non-image: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.PresignProfileImage(authedCtx(user.ID), "image/png", 5<<20+1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("oversized: expected ErrInvalidArgument, got %v", err)
	}
}

func TestUserServiceConfirmProfileImage(t *testing.T) {
	users := newFakeUserRepo()
	blobs := &fakeBlobStore{}
	svc := newTestUserService(users, newFakeLinkedAccountRepo(), blobs)
	user := seedFakeUser(t, users, true)

	// Confirming a key under someone else's prefix must not stick.
	foreign := s3store.OwnerPrefix(uuid.New()) + "1.png"
	if _, err := svc.ConfirmProfileImage(authedCtx(user.ID), foreign); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("foreign key: expected ErrInvalidArgument, got %v", err)
	}

	first := s3store.OwnerPrefix(user.ID) + "1.png"
	updated, err := svc.ConfirmProfileImage(authedCtx(user.ID), first)
	if err != nil {
		t.Fatalf("ConfirmProfileImage: %v", err)
	}
	if updated.ProfileImageKey != first || updated.ProfileImageURL == "" {
		t.Fatalf("updated = %+v", updated)
	}

	// Confirming a replacement deletes the previous object.
	second := s3store.OwnerPrefix(user.ID) + "2.png"
	if _, err := svc.ConfirmProfileImage(authedCtx(user.ID), second); err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if len(blobs.deletes) != 1 || blobs.deletes[0] != first {
		t.Fatalf("deletes = %v, want [%s]", blobs.deletes, first)
	}
}

func TestUserServiceUploadRejectsBeforeStore(t *testing.T) {
	cases := []struct {
		name        string
		size        int
		contentType string
	}{
		{"oversized", 5<<20 + 1, "image/png"},
		{"non_image", 128, "application/pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newFakeUserRepo()
			blobs := &fakeBlobStore{}
			svc := newTestUserService(users, newFakeLinkedAccountRepo(), blobs)
			user := seedFakeUser(t, users, true)

			_, err := svc.UploadProfileImage(authedCtx(user.ID), make([]byte, tc.size), tc.contentType)
			if !errors.Is(err, apperrors.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if blobs.uploads != 0 || len(blobs.deletes) != 0 {
				t.Fatalf("rejected upload reached the store: uploads=%d deletes=%v", blobs.uploads, blobs.deletes)
			}
		})
	}
}
