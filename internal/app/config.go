package app

import (
	"time"

	"github.com/Krishna1199000/propalai-backend/internal/pkg/envutil"
	s3store "github.com/Krishna1199000/propalai-backend/internal/platform/s3"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	GoogleClientID string

	SttCatalogPath string

	Blob s3store.Config
}

func LoadConfig() Config {
	return Config{
		Port:            envutil.String("PORT", "8080"),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.DurationSeconds("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envutil.DurationSeconds("REFRESH_TOKEN_TTL", 24*time.Hour),

		GoogleClientID: envutil.String("GOOGLE_OAUTH_CLIENT_ID", ""),

		SttCatalogPath: envutil.String("STT_CATALOG_JSON_PATH", "config/stt.json"),

		Blob: s3store.Config{
			Region:          envutil.String("AWS_REGION", "us-east-1"),
			Bucket:          envutil.String("AWS_S3_BUCKET", ""),
			AccessKeyID:     envutil.String("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: envutil.String("AWS_SECRET_ACCESS_KEY", ""),
			BaseEndpoint:    envutil.String("S3_BASE_ENDPOINT", ""),
		},
	}
}
