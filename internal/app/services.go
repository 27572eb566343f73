package app

import (
	"fmt"

	"gorm.io/gorm"

	s3store "github.com/Krishna1199000/propalai-backend/internal/platform/s3"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	SttConfig services.SttConfigService
	Catalog   services.CatalogService
	Blobs     s3store.BlobStore
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	blobs, err := s3store.NewBlobStore(log, cfg.Blob)
	if err != nil {
		return Services{}, fmt.Errorf("init blob store: %w", err)
	}

	// Google sign-in stays off unless a client id is configured.
	var googleVerifier services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		googleVerifier, err = services.NewGoogleVerifier(nil, cfg.GoogleClientID)
		if err != nil {
			return Services{}, fmt.Errorf("init google verifier: %w", err)
		}
	}

	catalog, err := services.NewCatalogService(log, cfg.SttCatalogPath)
	if err != nil {
		return Services{}, fmt.Errorf("init stt catalog: %w", err)
	}

	auth := services.NewAuthService(
		db,
		log,
		reposet.User,
		reposet.UserToken,
		reposet.LinkedAccount,
		googleVerifier,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	user := services.NewUserService(db, log, reposet.User, reposet.LinkedAccount, auth, blobs)
	sttConfig := services.NewSttConfigService(db, log, reposet.SttConfig)

	return Services{
		Auth:      auth,
		User:      user,
		SttConfig: sttConfig,
		Catalog:   catalog,
		Blobs:     blobs,
	}, nil
}
