package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tvqhuy/linhthu-arena/internal/constants"
	"github.com/tvqhuy/linhthu-arena/internal/dedupe"
)

// ListSpecies returns the full species catalogue. Loads are deduplicated
// through the shared singleflight group since the catalogue is read-mostly.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	v, err, _ := dedupe.SpeciesGroup.Do("all", func() (interface{}, error) {
		return h.repo.GetSpecies()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSpecies})
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListCaptureItems returns the configured capture charms.
func (h *BattleHandler) ListCaptureItems(c *gin.Context) {
	items, err := h.repo.GetCaptureItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchItems})
		return
	}
	c.JSON(http.StatusOK, items)
}
