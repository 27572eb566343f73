package app

import (
	"gorm.io/gorm"

	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
	"github.com/Krishna1199000/propalai-backend/internal/repos"
)

type Repos struct {
	User          repos.UserRepo
	UserToken     repos.UserTokenRepo
	LinkedAccount repos.LinkedAccountRepo
	SttConfig     repos.SttConfigRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		UserToken:     repos.NewUserTokenRepo(db, log),
		LinkedAccount: repos.NewLinkedAccountRepo(db, log),
		SttConfig:     repos.NewSttConfigRepo(db, log),
	}
}
