package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Askhat-B/esports-hub/models"
)

var ErrComplaintNotFound = errors.New("complaint not found")

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	ListByStatus(ctx context.Context, status models.ComplaintStatus) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, status models.ComplaintStatus) error
	CountByStatus(ctx context.Context, status models.ComplaintStatus) (int64, error)
}

type postgresComplaintRepository struct {
	db *sql.DB
}

func NewPostgresComplaintRepository(db *sql.DB) ComplaintRepository {
	return &postgresComplaintRepository{db: db}
}

func (r *postgresComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (user_name, email, type, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		c.UserName, c.Email, c.Type, c.Message, c.Status, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *postgresComplaintRepository) ListByStatus(ctx context.Context, status models.ComplaintStatus) ([]models.Complaint, error) {
	query := `
		SELECT id, user_name, email, type, message, status, created_at
		FROM complaints
		WHERE status = $1
		ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := make([]models.Complaint, 0)
	for rows.Next() {
		var c models.Complaint
		if scanErr := rows.Scan(&c.ID, &c.UserName, &c.Email, &c.Type, &c.Message, &c.Status, &c.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		complaints = append(complaints, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *postgresComplaintRepository) UpdateStatus(ctx context.Context, id int64, status models.ComplaintStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE complaints SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrComplaintNotFound)
}

func (r *postgresComplaintRepository) CountByStatus(ctx context.Context, status models.ComplaintStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints WHERE status = $1`, status).Scan(&count)
	return count, err
}
