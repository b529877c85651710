package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrUserNotFound is returned when no user exists for a uid.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned by Create when the uid is already taken.
	ErrUserExists = errors.New("user exists")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByUID(ctx context.Context, uid string) (User, error)
	SetPremium(ctx context.Context, uid string, premium bool) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. A concurrent first sign-in for the same uid
// surfaces as ErrUserExists.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	cmd, err := r.db.Exec(ctx, `INSERT INTO users (uid, email, display_name, is_premium, created_at)
        VALUES ($1, $2, $3, $4, $5) ON CONFLICT (uid) DO NOTHING`,
		user.UID, user.Email, user.DisplayName, user.IsPremium, user.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserExists
	}
	return nil
}

// FindByUID fetches a user by external subject id.
func (r *PostgresRepository) FindByUID(ctx context.Context, uid string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT uid, email, display_name, is_premium, created_at FROM users WHERE uid = $1`, uid)
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.UID, &user.Email, &user.DisplayName, &user.IsPremium, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

// SetPremium updates the premium flag.
func (r *PostgresRepository) SetPremium(ctx context.Context, uid string, premium bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET is_premium = $1 WHERE uid = $2`, premium, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
