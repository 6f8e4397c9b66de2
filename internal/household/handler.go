package household

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "code": apperr.CodeValidation})
		return
	}

	hh, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": apperr.CodeOf(err)})
		return
	}

	c.JSON(http.StatusCreated, hh)
}

func (h *Handler) Get(c *gin.Context) {
	hh, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": apperr.CodeOf(err)})
		return
	}

	c.JSON(http.StatusOK, hh)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": apperr.CodeOf(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"households": list})
}
