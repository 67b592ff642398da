package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrInsufficientBalance  = errors.New("wallet balance is insufficient")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.User, error)
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AdjustWalletBalance(ctx context.Context, exec SQLExecutor, id int64, delta int64) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const userColumns = `id, username, email, password_hash, role, wallet_balance, active, created_at`

func scanUser(row interface{ Scan(dest ...interface{}) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.WalletBalance, &u.Active, &u.CreatedAt)
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO users (username, email, password_hash, role, wallet_balance, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role, user.WalletBalance, user.Active,
	).Scan(&user.ID, &user.CreatedAt)

	return r.handleUserError(err)
}

func (r *postgresUserRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.User, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u := &models.User{}
	err := scanUser(executor.QueryRowContext(ctx, query, id), u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByIDForUpdate блокирует строку пользователя до конца транзакции.
func (r *postgresUserRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.User, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	u := &models.User{}
	err := scanUser(executor.QueryRowContext(ctx, query, id), u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	executor := r.getExecutor(nil)
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	u := &models.User{}
	err := scanUser(executor.QueryRowContext(ctx, query, username), u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	executor := r.getExecutor(nil)
	rows, err := executor.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if scanErr := scanUser(rows, &u); scanErr != nil {
			return nil, scanErr
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// AdjustWalletBalance применяет дельту к балансу одним атомарным выражением
// относительно текущего значения строки. Списание с уходом в минус не проходит:
// ноль затронутых строк при отрицательной дельте означает нехватку средств.
func (r *postgresUserRepository) AdjustWalletBalance(ctx context.Context, exec SQLExecutor, id int64, delta int64) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE users
		SET wallet_balance = wallet_balance + $1
		WHERE id = $2 AND wallet_balance + $1 >= 0`

	result, err := executor.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust wallet balance for user %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		if delta < 0 {
			return ErrInsufficientBalance
		}
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *postgresUserRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE active`).Scan(&count)
	return count, err
}

func (r *postgresUserRepository) handleUserError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_email_key":
				return ErrUserEmailConflict
			case "users_username_key":
				return ErrUserUsernameConflict
			}
		}
	}
	return err
}
