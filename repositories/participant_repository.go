package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound = errors.New("participant registration not found")
	ErrParticipantConflict = errors.New("user is already registered for this tournament")
	ErrParticipantInvalid  = errors.New("participant references invalid tournament or user")
)

// ParticipantRepository — insert-only журнал участий: записи не обновляются
// и не удаляются ядром.
type ParticipantRepository interface {
	Create(ctx context.Context, exec SQLExecutor, participant *models.Participant) error
	ExistsByTournamentAndUser(ctx context.Context, exec SQLExecutor, tournamentID, userID int64) (bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]models.Participant, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipantRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_participants (tournament_id, username, user_id, email, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		p.TournamentID, p.Username, p.UserID, p.Email, p.JoinedAt,
	).Scan(&p.ID)

	return r.handleParticipantError(err)
}

func (r *postgresParticipantRepository) ExistsByTournamentAndUser(ctx context.Context, exec SQLExecutor, tournamentID, userID int64) (bool, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tournament_participants
			WHERE tournament_id = $1 AND user_id = $2
		)`

	var exists bool
	if err := executor.QueryRowContext(ctx, query, tournamentID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresParticipantRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]models.Participant, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, tournament_id, username, user_id, email, joined_at
		FROM tournament_participants
		WHERE tournament_id = $1
		ORDER BY joined_at, id`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if scanErr := rows.Scan(&p.ID, &p.TournamentID, &p.Username, &p.UserID, &p.Email, &p.JoinedAt); scanErr != nil {
			return nil, scanErr
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *postgresParticipantRepository) handleParticipantError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			// tournament_participants_tournament_id_user_id_key
			return ErrParticipantConflict
		case "23503":
			return ErrParticipantInvalid
		}
	}
	return err
}
