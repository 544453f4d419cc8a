package vitals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carehome/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/vitals")
	{
		g.POST("", h.Record)
		g.GET("/latest", h.Latest)
		g.GET("/trends", h.Trends)
	}
}

type recordBody struct {
	Type       string    `json:"type" binding:"required"`
	Value      string    `json:"value" binding:"required"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *Handler) Record(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var body recordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.Record(c.Request.Context(), userID, RecordRequest{
		Type:       body.Type,
		Value:      body.Value,
		Unit:       body.Unit,
		RecordedAt: body.RecordedAt,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown vital type or empty value")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to record vital")
		return
	}

	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) Latest(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := h.service.Latest(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get vitals")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vitals": items})
}

func (h *Handler) Trends(c *gin.Context) {
	userID := c.GetInt64("user_id")

	days := 0
	if s := c.Query("days"); s != "" {
		days, _ = strconv.Atoi(s)
	}

	items, err := h.service.Trends(c.Request.Context(), userID, c.Query("type"), days)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown vital type")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get vital trends")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vitals": items})
}
