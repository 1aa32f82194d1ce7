package repositories

import (
	"context"

	"food-delivery/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RefreshTokenRepository struct {
	db *pgxpool.Pool
}

func NewRefreshTokenRepository(db *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Save(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, token.UserID, token.Token, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `SELECT id, user_id, token, expires_at, revoked, created_at FROM refresh_tokens WHERE token = $1`

	t := &models.RefreshToken{}
	err := r.db.QueryRow(ctx, query, token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Revoked, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// Revoke reports false when the token was already revoked, which makes
// concurrent refreshes with the same token lose.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1 AND NOT revoked`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND NOT revoked`, userID)
	return err
}

type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

const resetColumns = `id, user_id, code, reset_token, expires_at, attempts, verified, used, created_at`

func (r *PasswordResetRepository) scan(ctx context.Context, query string, args ...any) (*models.PasswordResetCode, error) {
	c := &models.PasswordResetCode{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.UserID, &c.Code, &c.ResetToken, &c.ExpiresAt, &c.Attempts, &c.Verified, &c.Used, &c.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *PasswordResetRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_codes WHERE user_id = $1`, userID)
	return err
}

func (r *PasswordResetRepository) Create(ctx context.Context, code *models.PasswordResetCode) error {
	query := `
		INSERT INTO password_reset_codes (user_id, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, code.UserID, code.Code, code.ExpiresAt).Scan(&code.ID, &code.CreatedAt)
}

func (r *PasswordResetRepository) FindLatestByUser(ctx context.Context, userID int64) (*models.PasswordResetCode, error) {
	return r.scan(ctx, `SELECT `+resetColumns+` FROM password_reset_codes WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID)
}

func (r *PasswordResetRepository) FindByResetToken(ctx context.Context, token string) (*models.PasswordResetCode, error) {
	return r.scan(ctx, `SELECT `+resetColumns+` FROM password_reset_codes WHERE reset_token = $1`, token)
}

func (r *PasswordResetRepository) Update(ctx context.Context, code *models.PasswordResetCode) error {
	query := `
		UPDATE password_reset_codes
		SET attempts = $1, verified = $2, used = $3, reset_token = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, code.Attempts, code.Verified, code.Used, code.ResetToken, code.ID)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
