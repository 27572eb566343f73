package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

type SttConfigRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SttConfiguration, error)
	Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, provider, model, language string) (*types.SttConfiguration, error)
}

type sttConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSttConfigRepo(db *gorm.DB, baseLog *logger.Logger) SttConfigRepo {
	return &sttConfigRepo{db: db, log: baseLog.With("repo", "SttConfigRepo")}
}

func (sr *sttConfigRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SttConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var cfg types.SttConfiguration
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get stt configuration: %w", err)
	}
	return &cfg, nil
}

// Upsert writes the one configuration row for userID. Insert-or-update is
// resolved by the unique index on user_id in a single statement, so two
// concurrent first-time saves cannot both insert; the loser of the race
// turns into an update.
func (sr *sttConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, provider, model, language string) (*types.SttConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	now := time.Now().UTC()
	cfg := types.SttConfiguration{
		ID:        uuid.New(),
		UserID:    userID,
		Provider:  provider,
		Model:     model,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"provider",
				"model",
				"language",
				"updated_at",
			}),
		}).
		Create(&cfg).Error; err != nil {
		return nil, fmt.Errorf("upsert stt configuration: %w", err)
	}

	// Re-read so callers see the surviving row's ID and created_at on the
	// update path, not the candidate row's.
	return sr.Get(ctx, transaction, userID)
}
