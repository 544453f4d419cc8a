package caregiver

import (
	"net/http"

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
	protected.GET("/caregivers", h.List)
}

func (h *Handler) List(c *gin.Context) {
	profiles, err := h.service.ListVerified(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get caregivers")
		return
	}

	out := make([]listingView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toListingView(p))
	}

	response.Success(c, http.StatusOK, gin.H{"caregivers": out})
}
