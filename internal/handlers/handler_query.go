package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/apperrors"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/dto"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/middleware"
)

// notblank rejects questions that are empty once trimmed; "required" alone
// lets all-whitespace strings through.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// queryHandler handles question answering requests
type queryHandler struct {
	queryService portssvc.QuerySvcFacade
}

// newQueryHandler creates a new query handler
func newQueryHandler(s portssvc.QuerySvcFacade) *queryHandler {
	return &queryHandler{
		queryService: s,
	}
}

// RegisterQueryRoutes registers the query routes on the router group
func RegisterQueryRoutes(rg *gin.RouterGroup, svc portssvc.QuerySvcFacade) {
	h := newQueryHandler(svc)
	rg.POST("/query", h.postQuery)
}

// postQuery godoc
// @Summary Answer a finance question
// @Description Classifies a natural-language finance question and answers it with text and an optional chart series. Unrecognized questions get guidance text rather than an error.
// @Tags query
// @Accept json
// @Produce json
// @Param query body dto.QueryRequest true "Question to answer"
// @Success 200 {object} dto.QueryResponse "Answer with optional series"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to answer question"
// @Router /query [post]
func (h *queryHandler) postQuery(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid query request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.queryService.Answer(ctx, req.Question)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Query validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to answer question", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer question"})
		return
	}

	logger.Info("Answered question",
		slog.Int("question_length", len(req.Question)),
		slog.Bool("degraded", result.Degraded),
		slog.Int("series_points", len(result.Series)))

	c.JSON(http.StatusOK, dto.ToQueryResponse(result, middleware.GetRequestIDFromCtx(ctx)))
}
