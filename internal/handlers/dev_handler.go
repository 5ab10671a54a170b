package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/repositories"
)

// DevHandler — служебные ручки для локальной разработки.
// Монтируются только вне production (см. routes).
type DevHandler struct {
	records repositories.RecordRepository
}

func NewDevHandler(records repositories.RecordRepository) *DevHandler {
	return &DevHandler{records: records}
}

// @Summary      Очистка таблицы records (dev-only)
// @Tags         Dev
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /dev/records [delete]
func (h *DevHandler) PurgeRecords(c *gin.Context) {
	n, err := h.records.DeleteAll(c.Request.Context())
	if err != nil {
		log.Printf("[dev][records] purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "purge failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
