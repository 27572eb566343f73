package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/repos"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*types.User

	getByEmailErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, tx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, update repos.ProfileUpdate) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	for id, other := range f.users {
		if id != userID && other.Email == update.Email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}
	u.Email = update.Email
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.PasswordHash != nil {
		u.Password = *update.PasswordHash
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfileImage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, key, url string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u.ProfileImageKey = key
	u.ProfileImageURL = url
	cp := *u
	return &cp, nil
}

type fakeUserTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*types.UserToken
}

func newFakeUserTokenRepo() *fakeUserTokenRepo {
	return &fakeUserTokenRepo{tokens: map[string]*types.UserToken{}}
}

func (f *fakeUserTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.RefreshToken] = token
	return token, nil
}

func (f *fakeUserTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, ok := f.tokens[refreshToken]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return tok, nil
}

func (f *fakeUserTokenRepo) DeleteByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, refreshToken)
	return nil
}

type fakeLinkedAccountRepo struct {
	mu       sync.Mutex
	accounts []*types.LinkedAccount
}

func newFakeLinkedAccountRepo() *fakeLinkedAccountRepo {
	return &fakeLinkedAccountRepo{}
}

func (f *fakeLinkedAccountRepo) GetByProviderSubject(ctx context.Context, tx *gorm.DB, provider, providerUserID string) (*types.LinkedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, la := range f.accounts {
		if la.Provider == provider && la.ProviderUserID == providerUserID {
			return la, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLinkedAccountRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LinkedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.LinkedAccount
	for _, la := range f.accounts {
		if la.UserID == userID {
			out = append(out, la)
		}
	}
	return out, nil
}

func (f *fakeLinkedAccountRepo) Link(ctx context.Context, tx *gorm.DB, userID uuid.UUID, provider, providerUserID string) (*types.LinkedAccount, error) {
	if la, err := f.GetByProviderSubject(ctx, tx, provider, providerUserID); err == nil {
		return la, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	la := &types.LinkedAccount{ID: uuid.New(), UserID: userID, Provider: provider, ProviderUserID: providerUserID}
	f.accounts = append(f.accounts, la)
	return la, nil
}

// fakeBlobStore records calls so tests can assert ordering and that
// rejected uploads never reach the store.
type fakeBlobStore struct {
	mu          sync.Mutex
	uploads     int
	deletes     []string
	failDelete  bool
	failUpload  bool
	lastKey     string
	lastContent string
}

func (f *fakeBlobStore) Upload(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return "", "", fmt.Errorf("%w: put object: boom", apperrors.ErrUpstream)
	}
	f.uploads++
	f.lastKey = fmt.Sprintf("profile-images/%s/%d.png", ownerID, f.uploads)
	f.lastContent = contentType
	return f.lastKey, "https://bucket.s3.us-east-1.amazonaws.com/" + f.lastKey, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	if f.failDelete {
		return fmt.Errorf("%w: delete object: boom", apperrors.ErrUpstream)
	}
	return nil
}

func (f *fakeBlobStore) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	return "https://signed.example/" + strings.TrimPrefix(key, "/"), nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key
}
