package shopping

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
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	Category  *string  `json:"category"`
	Completed bool     `json:"completed"`
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
		req.Completed,
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

// --------------------------------------------------
// ENGINE OPERATIONS
// --------------------------------------------------

// Synthesize fills the shopping list from a meal plan's shortfall report.
func (h *Handler) Synthesize(c *gin.Context) {
	var req struct {
		MealPlanID string `json:"meal_plan_id"`
	}

	if err := c.BindJSON(&req); err != nil || req.MealPlanID == "" {
		respondError(c, apperr.Validation("meal_plan_id is required"))
		return
	}

	result, err := h.service.Synthesize(c.Request.Context(), c.Param("id"), req.MealPlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Convert merges completed purchases back into inventory.
func (h *Handler) Convert(c *gin.Context) {
	var req struct {
		ItemIDs []string `json:"item_ids"`
		All     bool     `json:"all"`
	}

	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if !req.All && len(req.ItemIDs) == 0 {
		respondError(c, apperr.Validation("item_ids or all=true is required"))
		return
	}

	result, err := h.service.ConvertPurchases(c.Request.Context(), c.Param("id"), req.ItemIDs, req.All)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
