package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

type LinkedAccountRepo interface {
	GetByProviderSubject(ctx context.Context, tx *gorm.DB, provider, providerUserID string) (*types.LinkedAccount, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LinkedAccount, error)
	Link(ctx context.Context, tx *gorm.DB, userID uuid.UUID, provider, providerUserID string) (*types.LinkedAccount, error)
}

type linkedAccountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLinkedAccountRepo(db *gorm.DB, baseLog *logger.Logger) LinkedAccountRepo {
	return &linkedAccountRepo{db: db, log: baseLog.With("repo", "LinkedAccountRepo")}
}

func (lr *linkedAccountRepo) GetByProviderSubject(ctx context.Context, tx *gorm.DB, provider, providerUserID string) (*types.LinkedAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var la types.LinkedAccount
	if err := transaction.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&la).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get linked account: %w", err)
	}
	return &la, nil
}

func (lr *linkedAccountRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LinkedAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.LinkedAccount
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list linked accounts: %w", err)
	}
	return results, nil
}

// Link attaches an external identity to a user. Re-linking the same
// (provider, subject) pair is a no-op resolved by the unique index.
func (lr *linkedAccountRepo) Link(ctx context.Context, tx *gorm.DB, userID uuid.UUID, provider, providerUserID string) (*types.LinkedAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	la := types.LinkedAccount{
		ID:             uuid.New(),
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_user_id"}},
			DoNothing: true,
		}).
		Create(&la).Error; err != nil {
		return nil, fmt.Errorf("link account: %w", err)
	}
	return lr.GetByProviderSubject(ctx, transaction, provider, providerUserID)
}
