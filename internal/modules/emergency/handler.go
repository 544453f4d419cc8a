package emergency

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carehome/internal/modules/booking"
	"carehome/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, staffOnly gin.HandlerFunc) {
	g := protected.Group("/emergency")
	{
		g.POST("", h.Create)
		g.GET("", staffOnly, h.List)
	}
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Address is required")
		return
	}

	res, err := h.service.Create(c.Request.Context(), CreateRequest{
		CustomerID:  userID,
		CaregiverID: body.CaregiverID,
		Address:     body.Address,
		Phone:       body.Phone,
		Notes:       body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer account not found")
		case errors.Is(err, ErrInvalidAddress):
			response.Error(c, http.StatusBadRequest, "INVALID_ADDRESS", "A full address is required for emergency dispatch")
		case errors.Is(err, booking.ErrCaregiverNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Caregiver not found")
		case errors.Is(err, booking.ErrCaregiverNotVerified):
			response.Error(c, http.StatusBadRequest, "NOT_VERIFIED", "Caregiver is not verified")
		case errors.Is(err, booking.ErrNotAvailable):
			response.Error(c, http.StatusConflict, "NOT_AVAILABLE", "Caregiver is not available right now")
		default:
			response.Error(c, http.StatusInternalServerError, "EMERGENCY_FAILED", "Failed to create emergency request")
		}
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, res, "Emergency request created, help is on the way")
}

func (h *Handler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	items, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get emergency requests")
		return
	}

	response.Paginated(c, http.StatusOK, items, response.NewPagination(page, limit, total), nil)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
