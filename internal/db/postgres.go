package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates the tables on first boot. Migration tooling lives
// outside this service; this is just the bootstrap.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS households (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS inventory_items (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			quantity DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			unit VARCHAR(50) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT 'Uncategorized',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NULL,
			servings INT NOT NULL DEFAULT 0,
			image_url VARCHAR(500) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id UUID PRIMARY KEY,
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			quantity DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
			unit VARCHAR(50) NOT NULL,
			notes TEXT NULL,
			inventory_item_id UUID NULL,
			position INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS meal_plans (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			week_start DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS meal_plan_items (
			id UUID PRIMARY KEY,
			meal_plan_id UUID NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			meal_type VARCHAR(20) NOT NULL,
			recipe_id UUID NULL,
			cooked BOOLEAN NOT NULL DEFAULT FALSE,
			cooked_at TIMESTAMP NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (meal_plan_id, date, meal_type)
		)`,

		`CREATE TABLE IF NOT EXISTS shopping_list_items (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			quantity DOUBLE PRECISION NULL,
			unit VARCHAR(50) NULL,
			category VARCHAR(100) NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// the reconciler and synthesizer both match by folded name
		`CREATE INDEX IF NOT EXISTS idx_inventory_items_household_name
			ON inventory_items (household_id, lower(name))`,
		`CREATE INDEX IF NOT EXISTS idx_shopping_list_items_household_name
			ON shopping_list_items (household_id, lower(name))`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
