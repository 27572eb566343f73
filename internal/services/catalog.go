package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
)

// Catalog is the static provider -> model -> language tree clients use to
// populate the STT configuration form. It is read once at startup and never
// consulted when a preference is saved.
type Catalog struct {
	Stt []CatalogProvider `json:"stt"`
}

type CatalogProvider struct {
	Name   string         `json:"name"`
	Value  string         `json:"value"`
	Models []CatalogModel `json:"models"`
}

type CatalogModel struct {
	Name      string            `json:"name"`
	Value     string            `json:"value"`
	Languages []CatalogLanguage `json:"languages"`
}

type CatalogLanguage struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CatalogService interface {
	Get() *Catalog
}

type catalogService struct {
	log     *logger.Logger
	catalog *Catalog
}

func NewCatalogService(log *logger.Logger, path string) (CatalogService, error) {
	serviceLog := log.With("service", "CatalogService")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stt catalog: %w", err)
	}
	var catalog Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse stt catalog: %w", err)
	}
	if len(catalog.Stt) == 0 {
		return nil, fmt.Errorf("stt catalog %q lists no providers", path)
	}

	serviceLog.Info("Loaded stt catalog", "path", path, "providers", len(catalog.Stt))
	return &catalogService{log: serviceLog, catalog: &catalog}, nil
}

func (cs *catalogService) Get() *Catalog {
	return cs.catalog
}
