package mealplan

import (
	"errors"
	"net/http"
	"time"

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
	body := gin.H{"error": err.Error(), "code": apperr.CodeOf(err)}

	var e *apperr.Error
	if errors.As(err, &e) && e.Details != nil {
		body["details"] = e.Details
	}

	c.JSON(apperr.HTTPStatus(err), body)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be YYYY-MM-DD")
	}
	return d, nil
}

// --------------------------------------------------
// PLANS
// --------------------------------------------------

func (h *Handler) CreatePlan(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		WeekStart string `json:"week_start"`
	}

	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), c.Param("id"), req.Name, weekStart)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context(), c.Param("id"), c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// --------------------------------------------------
// SLOTS
// --------------------------------------------------

type slotRequest struct {
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	RecipeID *string `json:"recipe_id"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req slotRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.service.AddItem(
		c.Request.Context(),
		c.Param("id"),
		c.Param("planId"),
		date,
		MealType(req.MealType),
		req.RecipeID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req slotRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.service.UpdateItem(
		c.Request.Context(),
		c.Param("id"),
		c.Param("planId"),
		c.Param("mealId"),
		date,
		MealType(req.MealType),
		req.RecipeID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	err := h.service.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("planId"), c.Param("mealId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal removed"})
}

// --------------------------------------------------
// ENGINE OPERATIONS
// --------------------------------------------------

func (h *Handler) Cook(c *gin.Context) {
	result, err := h.service.CookMeal(
		c.Request.Context(),
		c.Param("id"),
		c.Param("planId"),
		c.Param("mealId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) WeekReport(c *gin.Context) {
	report, err := h.service.WeekReport(c.Request.Context(), c.Param("id"), c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
