package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists rendered results.
type Repository interface {
	Save(ctx context.Context, result Result) (string, error)
	ListByUser(ctx context.Context, uid string) ([]Result, error)
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// PostgresRepository stores results in PostgreSQL.
type PostgresRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// Save inserts a result and returns its identifier.
func (r *PostgresRepository) Save(ctx context.Context, result Result) (string, error) {
	id := uuid.New()
	if result.ID != "" {
		parsed, err := uuid.Parse(result.ID)
		if err != nil {
			return "", err
		}
		id = parsed
	}
	grades, err := json.Marshal(result.Grades)
	if err != nil {
		return "", fmt.Errorf("encode grades: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO results (id, user_id, student_name, reg_number, grades, cgpa, total_credits, image_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, result.UserID, result.StudentInfo.Name, result.StudentInfo.RegNumber, grades,
		result.CGPA, result.TotalCredits, result.ImageURL, result.CreatedAt.UTC())
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ListByUser returns every result owned by uid, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, uid string) ([]Result, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, student_name, reg_number, grades, cgpa, total_credits, image_url, created_at
        FROM results WHERE user_id = $1 ORDER BY created_at`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var (
			res    Result
			id     uuid.UUID
			grades []byte
		)
		if err := rows.Scan(&id, &res.UserID, &res.StudentInfo.Name, &res.StudentInfo.RegNumber, &grades,
			&res.CGPA, &res.TotalCredits, &res.ImageURL, &res.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(grades, &res.Grades); err != nil {
			return nil, fmt.Errorf("decode grades: %w", err)
		}
		res.ID = id.String()
		res.CreatedAt = res.CreatedAt.UTC()
		out = append(out, res)
	}
	return out, rows.Err()
}

// PurgeOlderThan deletes results created more than age ago.
func (r *PostgresRepository) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM results WHERE created_at < $1`, r.now().Add(-age).UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
