package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
)

// healthHandler reports service liveness and load diagnostics
type healthHandler struct {
	records portsrepo.RecordStoreFacade
}

// registerHealthRoutes registers the '/health' route
func registerHealthRoutes(r *gin.Engine, records portsrepo.RecordStoreFacade) {
	h := &healthHandler{records: records}
	r.GET("/health", h.getHealth)
}

// getHealth godoc
// @Summary Show the status of the server.
// @Description Reports liveness plus how many source rows were dropped while loading the financial tables.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *healthHandler) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"droppedRows": h.records.Stats(c.Request.Context()),
	})
}
