package repository

import (
	"context"
	"database/sql"
	"errors"

	"feedbackportal/models"

	"github.com/lib/pq"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// CreateUser inserts a user whose password is already hashed.
func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`, user.Username, user.PasswordHash, user.Role).Scan(&user.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role
		FROM users
		WHERE id=$1
	`, id))
}

func (r *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role
		FROM users
		WHERE username=$1
	`, username))
}

func (r *PostgresUserRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *PostgresUserRepo) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
