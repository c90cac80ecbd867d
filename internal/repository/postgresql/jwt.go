package postgresql

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/tracklite/timeclock-backend-go/internal/domain/auth"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type JWTRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error
	IsRefreshTokenActive(ctx context.Context, userID string, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, userID string, token string) error
}

type jwtRepositoryImpl struct {
	db *database.DB
}

// NewJWTRepository creates a new instance of JWTRepository.
func NewJWTRepository(db *database.DB) JWTRepository {
	return &jwtRepositoryImpl{db: db}
}

// digest reduces the token to a fixed-length input for bcrypt. bcrypt only
// reads the first 72 bytes and JWTs are longer than that.
func digest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

func (j *jwtRepositoryImpl) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, j.db)

	tokenHash, err := bcrypt.GenerateFromPassword(digest(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash refresh token: %w", err)
	}

	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = q.Exec(ctx, query, userID, string(tokenHash), time.Unix(expiresAt, 0).UTC(), sessionReq.UserAgent, sessionReq.IPAddress)
	return err
}

// IsRefreshTokenActive reports whether the token matches a live (unrevoked,
// unexpired) row for the user. Hashes are salted, so candidate rows are
// compared one by one.
func (j *jwtRepositoryImpl) IsRefreshTokenActive(ctx context.Context, userID string, token string) (bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT token_hash
		FROM refresh_tokens
		WHERE user_id = $1
		  AND revoked_at IS NULL
		  AND expires_at > NOW()
		ORDER BY expires_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("query refresh tokens: %w", err)
	}
	defer rows.Close()

	candidate := digest(token)
	for rows.Next() {
		var tokenHash string
		if err := rows.Scan(&tokenHash); err != nil {
			return false, fmt.Errorf("scan refresh token row: %w", err)
		}
		if bcrypt.CompareHashAndPassword([]byte(tokenHash), candidate) == nil {
			return true, nil
		}
	}

	return false, rows.Err()
}

func (j *jwtRepositoryImpl) RevokeRefreshToken(ctx context.Context, userID string, token string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT id, token_hash
		FROM refresh_tokens
		WHERE user_id = $1
		  AND revoked_at IS NULL
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("query refresh tokens: %w", err)
	}
	defer rows.Close()

	candidate := digest(token)
	var matchedID string
	for rows.Next() {
		var id, tokenHash string
		if err := rows.Scan(&id, &tokenHash); err != nil {
			return fmt.Errorf("scan refresh token row: %w", err)
		}
		if bcrypt.CompareHashAndPassword([]byte(tokenHash), candidate) == nil {
			matchedID = id
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if matchedID == "" {
		return auth.ErrRefreshTokenRevoked
	}

	update := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL
	`
	_, err = q.Exec(ctx, update, matchedID)
	return err
}
