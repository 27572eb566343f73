package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/repos"
	"github.com/Krishna1199000/propalai-backend/internal/types"
)

type SttConfigService interface {
	// Get returns the caller's configuration, or (nil, nil) when none has
	// been saved yet.
	Get(ctx context.Context) (*types.SttConfiguration, error)
	Save(ctx context.Context, provider, model, language string) (*types.SttConfiguration, error)
}

type sttConfigService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.SttConfigRepo
}

func NewSttConfigService(db *gorm.DB, log *logger.Logger, repo repos.SttConfigRepo) SttConfigService {
	return &sttConfigService{
		db:   db,
		log:  log.With("service", "SttConfigService"),
		repo: repo,
	}
}

func (ss *sttConfigService) Get(ctx context.Context) (*types.SttConfiguration, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := ss.repo.Get(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save validates the three selection fields and upserts the single row for
// the caller. Values are not checked against the provider catalog; the
// catalog lives in static client config and the row just records a choice.
func (ss *sttConfigService) Save(ctx context.Context, provider, model, language string) (*types.SttConfiguration, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	provider = strings.TrimSpace(provider)
	model = strings.TrimSpace(model)
	language = strings.TrimSpace(language)
	if provider == "" || model == "" || language == "" {
		return nil, fmt.Errorf("%w: provider, model and language are required", apperrors.ErrInvalidArgument)
	}

	cfg, err := ss.repo.Upsert(ctx, nil, userID, provider, model, language)
	if err != nil {
		return nil, err
	}
	ss.log.Info("Saved stt configuration", "user_id", userID, "provider", provider, "model", model)
	return cfg, nil
}
