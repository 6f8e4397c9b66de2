package recipe

import (
	"errors"
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
	body := gin.H{"error": err.Error(), "code": apperr.CodeOf(err)}

	var e *apperr.Error
	if errors.As(err, &e) && e.Details != nil {
		body["details"] = e.Details
	}

	c.JSON(apperr.HTTPStatus(err), body)
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name        string            `json:"name"`
		Description *string           `json:"description"`
		Servings    int               `json:"servings"`
		Ingredients []IngredientInput `json:"ingredients"`
	}

	if err := c.BindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	rec, err := h.service.Create(
		c.Request.Context(),
		c.Param("id"),
		req.Name,
		req.Description,
		req.Servings,
		req.Ingredients,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"), c.Param("recipeId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) List(c *gin.Context) {
	recipes, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Param("recipeId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// --------------------------------------------------
// Availability check (READ ONLY)
// --------------------------------------------------
func (h *Handler) Availability(c *gin.Context) {
	av, err := h.service.Availability(c.Request.Context(), c.Param("id"), c.Param("recipeId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, av)
}

// --------------------------------------------------
// Recipe image upload
// --------------------------------------------------
func (h *Handler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, apperr.Validation("image file is required"))
		return
	}
	defer file.Close()

	url, err := h.service.UploadImage(
		c.Request.Context(),
		c.Param("id"),
		c.Param("recipeId"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}
