package household

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, h *Household) error {
	h.ID = uuid.New().String()

	return r.db.QueryRow(ctx, `
		INSERT INTO households (id, name, created_at)
		VALUES ($1, $2, now())
		RETURNING created_at
	`, h.ID, h.Name).Scan(&h.CreatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Household, error) {
	var h Household

	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM households
		WHERE id = $1
	`, id).Scan(&h.ID, &h.Name, &h.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("household not found")
		}
		return nil, err
	}

	return &h, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Household, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at
		FROM households
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Household
	for rows.Next() {
		var h Household
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &h)
	}

	return out, rows.Err()
}
