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
	ErrTournamentNotFound         = errors.New("tournament not found")
	ErrTournamentNameConflict     = errors.New("tournament name conflict for this creator")
	ErrTournamentInvalidHost      = errors.New("invalid host user reference")
	ErrTournamentStateConflict    = errors.New("tournament is not in the expected state")
	ErrTournamentCapacityExceeded = errors.New("tournament capacity exceeded")
)

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Tournament, error)
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.Tournament, error)
	ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error)
	ListByCreator(ctx context.Context, createdBy string) ([]models.Tournament, error)
	ListPublic(ctx context.Context) ([]models.Tournament, error)
	ListOfficial(ctx context.Context) ([]models.Tournament, error)
	IncrementJoinedCount(ctx context.Context, exec SQLExecutor, id int64) (int, error)
	SetRoomCredentials(ctx context.Context, exec SQLExecutor, id int64, roomID, roomPassword string) (bool, error)
	UpdateStatusFrom(ctx context.Context, exec SQLExecutor, id int64, from, to models.TournamentStatus) error
	CompleteTournament(ctx context.Context, exec SQLExecutor, id int64, winner *string, prizeDelivered bool) error
	UpdateBannerKey(ctx context.Context, id int64, bannerKey *string) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.TournamentStatus) (int64, error)
	SumPrizePoolByStatus(ctx context.Context, status models.TournamentStatus) (int64, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, name, game, status, created_by, host_user_id, slots, joined_count,
	entry_fee, prize_pool, big_prize_pool, is_official, scheduled_text,
	stream_url, room_id, room_password, winner, prize_delivered, banner_key, created_at`

func scanTournament(row interface{ Scan(dest ...interface{}) error }, t *models.Tournament) error {
	return row.Scan(
		&t.ID, &t.Name, &t.Game, &t.Status, &t.CreatedBy, &t.HostUserID,
		&t.Slots, &t.JoinedCount, &t.EntryFee, &t.PrizePool, &t.BigPrizePool,
		&t.Official, &t.ScheduledText, &t.StreamURL, &t.RoomID, &t.RoomPassword,
		&t.Winner, &t.PrizeDelivered, &t.BannerKey, &t.CreatedAt,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	executor := r.getExecutor(nil)
	// room_id/room_password никогда не задаются при создании
	query := `
		INSERT INTO tournaments (
			name, game, status, created_by, host_user_id, slots, joined_count,
			entry_fee, prize_pool, big_prize_pool, is_official, scheduled_text, stream_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		t.Name, t.Game, t.Status, t.CreatedBy, t.HostUserID, t.Slots, t.JoinedCount,
		t.EntryFee, t.PrizePool, t.BigPrizePool, t.Official, t.ScheduledText, t.StreamURL,
	).Scan(&t.ID, &t.CreatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := scanTournament(executor.QueryRowContext(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByIDForUpdate захватывает строку турнира до конца транзакции. Все join
// одного турнира сериализуются на этой блокировке.
func (r *postgresTournamentRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1 FOR UPDATE`

	t := &models.Tournament{}
	err := scanTournament(executor.QueryRowContext(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	executor := r.getExecutor(nil)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := scanTournament(rows, &t); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE status = $1 ORDER BY id DESC`
	return r.list(ctx, query, status)
}

func (r *postgresTournamentRepository) ListByCreator(ctx context.Context, createdBy string) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE created_by = $1 ORDER BY id DESC`
	return r.list(ctx, query, createdBy)
}

// ListPublic возвращает live, scheduled и completed турниры одной выборкой,
// новые сверху — лента для главного экрана.
func (r *postgresTournamentRepository) ListPublic(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + `
		FROM tournaments
		WHERE status IN ($1, $2, $3)
		ORDER BY id DESC`
	return r.list(ctx, query, models.StatusLive, models.StatusScheduled, models.StatusCompleted)
}

func (r *postgresTournamentRepository) ListOfficial(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE is_official ORDER BY id DESC`
	return r.list(ctx, query)
}

// IncrementJoinedCount увеличивает счётчик только пока есть свободные слоты.
// Проверка ёмкости и инкремент — одно атомарное выражение, не read-modify-write.
func (r *postgresTournamentRepository) IncrementJoinedCount(ctx context.Context, exec SQLExecutor, id int64) (int, error) {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournaments
		SET joined_count = joined_count + 1
		WHERE id = $1 AND joined_count < slots
		RETURNING joined_count`

	var joinedCount int
	err := executor.QueryRowContext(ctx, query, id).Scan(&joinedCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTournamentCapacityExceeded
		}
		return 0, fmt.Errorf("failed to increment joined count for tournament %d: %w", id, err)
	}
	return joinedCount, nil
}

// SetRoomCredentials записывает комнатные данные ровно один раз. Возвращает
// false, если данные уже были заданы — существующие никогда не перезаписываются.
func (r *postgresTournamentRepository) SetRoomCredentials(ctx context.Context, exec SQLExecutor, id int64, roomID, roomPassword string) (bool, error) {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournaments
		SET room_id = $1, room_password = $2
		WHERE id = $3 AND room_id IS NULL`

	result, err := executor.ExecContext(ctx, query, roomID, roomPassword, id)
	if err != nil {
		return false, fmt.Errorf("failed to set room credentials for tournament %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected == 1, nil
}

// UpdateStatusFrom — охраняемый переход статуса: меняет только из ожидаемого
// текущего состояния, обратных переходов нет.
func (r *postgresTournamentRepository) UpdateStatusFrom(ctx context.Context, exec SQLExecutor, id int64, from, to models.TournamentStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET status = $1 WHERE id = $2 AND status = $3`
	result, err := executor.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentStateConflict)
}

func (r *postgresTournamentRepository) CompleteTournament(ctx context.Context, exec SQLExecutor, id int64, winner *string, prizeDelivered bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournaments
		SET status = $1,
			winner = COALESCE($2, winner),
			prize_delivered = prize_delivered OR $3
		WHERE id = $4 AND status = $5`
	result, err := executor.ExecContext(ctx, query,
		models.StatusCompleted, winner, prizeDelivered, id, models.StatusLive,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentStateConflict)
}

func (r *postgresTournamentRepository) UpdateBannerKey(ctx context.Context, id int64, bannerKey *string) error {
	executor := r.getExecutor(nil)
	query := `UPDATE tournaments SET banner_key = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, bannerKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament banner key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&count)
	return count, err
}

func (r *postgresTournamentRepository) CountByStatus(ctx context.Context, status models.TournamentStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *postgresTournamentRepository) SumPrizePoolByStatus(ctx context.Context, status models.TournamentStatus) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(prize_pool), 0) FROM tournaments WHERE status = $1`, status,
	).Scan(&sum)
	return sum, err
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "tournaments_created_by_name_key" {
				return ErrTournamentNameConflict
			}
		case "23503":
			if pqErr.Constraint == "tournaments_host_user_id_fkey" {
				return ErrTournamentInvalidHost
			}
		}
	}
	return err
}
