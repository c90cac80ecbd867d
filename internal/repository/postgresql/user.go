package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tracklite/timeclock-backend-go/internal/domain/user"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// UpsertByGoogleID implements user.UserRepository.
func (r *userRepository) UpsertByGoogleID(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, google_id, email, name, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		ON CONFLICT (google_id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    updated_at = NOW()
		RETURNING id, google_id, email, name, created_at, updated_at
	`

	var stored user.User
	err := q.QueryRow(ctx, query, u.GoogleID, u.Email, u.Name).Scan(
		&stored.ID, &stored.GoogleID, &stored.Email, &stored.Name,
		&stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	return stored, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, google_id, email, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}
