package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/config"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// @Summary      Liveness-проба
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"db_url_set": h.cfg.Database.DSN != "",
		"env":        h.cfg.Server.Env,
	})
}
