package inventory

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

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  apperr.CodeOf(err),
	})
}

type itemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

func (h *Handler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	item, err := h.service.Create(
		c.Request.Context(),
		c.Param("id"),
		req.Name,
		req.Quantity,
		req.Unit,
		req.Category,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Update(c *gin.Context) {
	var req itemRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	item, err := h.service.Update(
		c.Request.Context(),
		c.Param("id"),
		c.Param("itemId"),
		req.Name,
		req.Quantity,
		req.Unit,
		req.Category,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
