package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/kbredenberg/mealplanner-sub000/internal/db"
	"github.com/kbredenberg/mealplanner-sub000/internal/household"
	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
	"github.com/kbredenberg/mealplanner-sub000/internal/mealplan"
	"github.com/kbredenberg/mealplanner-sub000/internal/notify"
	"github.com/kbredenberg/mealplanner-sub000/internal/recipe"
	"github.com/kbredenberg/mealplanner-sub000/internal/shopping"
	"github.com/kbredenberg/mealplanner-sub000/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"STORAGE_ACCESS_KEY",
		"STORAGE_SECRET_KEY",
		"STORAGE_BUCKET",
		"STORAGE_ENDPOINT",
		"STORAGE_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	objectStore, err := storage.NewClient(context.Background())
	if err != nil {
		log.Fatal("❌ Object storage init failed:", err)
	}

	// ───────────────────────── NOTIFIER ─────────────────────────
	notifier := notify.LogNotifier{}

	// ───────────────────────── CORE REPOS ─────────────────────────
	householdRepo := household.NewPostgresRepository(pgDB)
	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)
	mealPlanRepo := mealplan.NewPostgresRepository(pgDB)
	shoppingRepo := shopping.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	householdService := household.NewService(householdRepo)
	inventoryService := inventory.NewService(inventoryRepo, notifier)

	recipeService := recipe.NewService(
		recipeRepo,
		inventoryService,
		objectStore,
	)

	mealPlanService := mealplan.NewService(
		mealPlanRepo,
		recipeService,
		inventoryService,
		notifier,
	)

	shoppingService := shopping.NewService(
		shoppingRepo,
		mealPlanService,
		notifier,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	householdHandler := household.NewHandler(householdService)
	inventoryHandler := inventory.NewHandler(inventoryService)
	recipeHandler := recipe.NewHandler(recipeService)
	mealPlanHandler := mealplan.NewHandler(mealPlanService)
	shoppingHandler := shopping.NewHandler(shoppingService)

	// ───────────────────────── HOUSEHOLD ROUTES ─────────────────────────
	r.POST("/households", householdHandler.Create)
	r.GET("/households", householdHandler.List)
	r.GET("/households/:id", householdHandler.Get)

	hh := r.Group("/households/:id")
	{
		// Inventory
		hh.GET("/inventory", inventoryHandler.List)
		hh.POST("/inventory", inventoryHandler.Create)
		hh.PUT("/inventory/:itemId", inventoryHandler.Update)
		hh.DELETE("/inventory/:itemId", inventoryHandler.Delete)

		// Recipes
		hh.GET("/recipes", recipeHandler.List)
		hh.POST("/recipes", recipeHandler.Create)
		hh.GET("/recipes/:recipeId", recipeHandler.Get)
		hh.DELETE("/recipes/:recipeId", recipeHandler.Delete)
		hh.GET("/recipes/:recipeId/availability", recipeHandler.Availability)
		hh.POST("/recipes/:recipeId/image", recipeHandler.UploadImage)

		// Meal plans
		hh.POST("/meal-plans", mealPlanHandler.CreatePlan)
		hh.GET("/meal-plans", mealPlanHandler.ListPlans)
		hh.GET("/meal-plans/:planId/items", mealPlanHandler.ListItems)
		hh.POST("/meal-plans/:planId/items", mealPlanHandler.AddItem)
		hh.PUT("/meal-plans/:planId/items/:mealId", mealPlanHandler.UpdateItem)
		hh.DELETE("/meal-plans/:planId/items/:mealId", mealPlanHandler.DeleteItem)
		hh.POST("/meal-plans/:planId/items/:mealId/cook", mealPlanHandler.Cook)
		hh.GET("/meal-plans/:planId/week-report", mealPlanHandler.WeekReport)

		// Shopping list
		hh.GET("/shopping-list", shoppingHandler.List)
		hh.POST("/shopping-list", shoppingHandler.Create)
		hh.PUT("/shopping-list/:itemId", shoppingHandler.Update)
		hh.DELETE("/shopping-list/:itemId", shoppingHandler.Delete)
		hh.POST("/shopping-list/synthesize", shoppingHandler.Synthesize)
		hh.POST("/shopping-list/convert", shoppingHandler.Convert)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
