package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Krishna1199000/propalai-backend/internal/password"
	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/repos"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

// bcryptCost matches the hash strength of the original credential store.
const bcryptCost = 12

// TokenPair is an issued session: a stateless access JWT plus an opaque
// refresh token persisted in user_token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, name, email, plaintext string) (*types.User, error)
	LoginUser(ctx context.Context, email, plaintext string) (*TokenPair, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*TokenPair, error)
	RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error)
	LogoutUser(ctx context.Context, refreshToken string) error
	VerifyAccessToken(tokenString string) (uuid.UUID, error)
	HashPassword(plaintext string) (string, error)
}

type authService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	linkedRepo     repos.LinkedAccountRepo
	googleVerifier GoogleVerifier
	jwtSecretKey   string
	accessTTL      time.Duration
	refreshTTL     time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	linkedRepo repos.LinkedAccountRepo,
	googleVerifier GoogleVerifier,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:             db,
		log:            log.With("service", "AuthService"),
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		linkedRepo:     linkedRepo,
		googleVerifier: googleVerifier,
		jwtSecretKey:   jwtSecretKey,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (as *authService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (as *authService) RegisterUser(ctx context.Context, name, email, plaintext string) (*types.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", apperrors.ErrInvalidArgument)
	}
	if res := password.Evaluate(plaintext); !res.Valid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, res.Message)
	}

	hash, err := as.HashPassword(plaintext)
	if err != nil {
		return nil, err
	}

	user := &types.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
	}
	created, err := as.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, err
	}
	as.log.Info("Registered user", "user_id", created.ID)
	return created, nil
}

func (as *authService) LoginUser(ctx context.Context, email, plaintext string) (*TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || plaintext == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrInvalidArgument)
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	// OAuth-only accounts carry no hash and can never log in with a
	// password; do not run a bcrypt compare against the empty string.
	if !user.HasPassword() {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plaintext)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return as.issueTokens(ctx, nil, user)
}

func (as *authService) LoginWithGoogle(ctx context.Context, idToken string) (*TokenPair, error) {
	if as.googleVerifier == nil {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrInvalidArgument)
	}
	identity, err := as.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if !identity.EmailVerified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := as.resolveGoogleUser(ctx, tx, identity)
		if err != nil {
			return err
		}
		pair, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// resolveGoogleUser maps a verified Google identity to a local user:
// already-linked subject first, then verified email, else a fresh
// OAuth-only account with no credential hash.
func (as *authService) resolveGoogleUser(ctx context.Context, tx *gorm.DB, identity *ExternalIdentity) (*types.User, error) {
	if la, err := as.linkedRepo.GetByProviderSubject(ctx, tx, identity.Provider, identity.Sub); err == nil {
		return as.userRepo.GetByID(ctx, tx, la.UserID)
	}

	user, err := as.userRepo.GetByEmail(ctx, tx, identity.Email)
	if err != nil {
		// Only an absent row means "create"; a failed lookup must not be
		// retried as an insert against a possibly-existing email.
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = identity.Email
		}
		user, err = as.userRepo.Create(ctx, tx, &types.User{
			ID:    uuid.New(),
			Name:  name,
			Email: identity.Email,
		})
		if err != nil {
			return nil, err
		}
		as.log.Info("Created user from google sign-in", "user_id", user.ID)
	}

	if _, err := as.linkedRepo.Link(ctx, tx, user.ID, identity.Provider, identity.Sub); err != nil {
		return nil, err
	}
	return user, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh token is required", apperrors.ErrInvalidArgument)
	}

	var pair *TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			return fmt.Errorf("%w: unknown refresh token", apperrors.ErrUnauthorized)
		}
		if existing.ExpiresAt.Before(time.Now()) {
			_ = as.userTokenRepo.DeleteByRefreshToken(ctx, tx, refreshToken)
			return fmt.Errorf("%w: refresh token expired", apperrors.ErrUnauthorized)
		}
		user, err := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthorized)
		}
		if err := as.userTokenRepo.DeleteByRefreshToken(ctx, tx, refreshToken); err != nil {
			return err
		}
		pair, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) LogoutUser(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return fmt.Errorf("%w: refresh token is required", apperrors.ErrInvalidArgument)
	}
	return as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.NewString()
	if _, err := as.userTokenRepo.Create(ctx, tx, &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid subject", apperrors.ErrUnauthorized)
	}
	return userID, nil
}
