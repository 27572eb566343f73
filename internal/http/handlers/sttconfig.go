package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krishna1199000/propalai-backend/internal/http/response"
	"github.com/Krishna1199000/propalai-backend/internal/services"
)

type SttConfigHandler struct {
	configService  services.SttConfigService
	catalogService services.CatalogService
}

func NewSttConfigHandler(configService services.SttConfigService, catalogService services.CatalogService) *SttConfigHandler {
	return &SttConfigHandler{
		configService:  configService,
		catalogService: catalogService,
	}
}

// GET /api/config
// Responds with the saved configuration, or a JSON null when the user has
// never saved one.
func (sh *SttConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := sh.configService.Get(c.Request.Context())
	if err != nil {
		response.RespondMapped(c, "get_config_failed", err)
		return
	}
	if cfg == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	response.RespondOK(c, cfg)
}

// POST /api/config
// body: { "provider": "...", "model": "...", "language": "..." }
func (sh *SttConfigHandler) SaveConfig(c *gin.Context) {
	var req struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cfg, err := sh.configService.Save(c.Request.Context(), req.Provider, req.Model, req.Language)
	if err != nil {
		response.RespondMapped(c, "save_config_failed", err)
		return
	}
	response.RespondOK(c, cfg)
}

// GET /api/stt/catalog
func (sh *SttConfigHandler) GetCatalog(c *gin.Context) {
	response.RespondOK(c, sh.catalogService.Get())
}
