package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/lib/pq"
)

var (
	ErrResultNotFound          = errors.New("tournament result not found")
	ErrResultInvalidTournament = errors.New("result references invalid tournament")
)

type ResultRepository interface {
	GetByTournamentID(ctx context.Context, tournamentID int64) (*models.TournamentResult, error)
	Upsert(ctx context.Context, result *models.TournamentResult) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) GetByTournamentID(ctx context.Context, tournamentID int64) (*models.TournamentResult, error) {
	query := `
		SELECT id, tournament_id, first_place, second_place, third_place, extra_info
		FROM tournament_results
		WHERE tournament_id = $1`

	res := &models.TournamentResult{}
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&res.ID, &res.TournamentID, &res.FirstPlace, &res.SecondPlace, &res.ThirdPlace, &res.ExtraInfo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return res, nil
}

// Upsert: одна итоговая запись на турнир, повторное сохранение — перезапись.
func (r *postgresResultRepository) Upsert(ctx context.Context, result *models.TournamentResult) error {
	query := `
		INSERT INTO tournament_results (tournament_id, first_place, second_place, third_place, extra_info)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tournament_id) DO UPDATE SET
			first_place = EXCLUDED.first_place,
			second_place = EXCLUDED.second_place,
			third_place = EXCLUDED.third_place,
			extra_info = EXCLUDED.extra_info
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		result.TournamentID, result.FirstPlace, result.SecondPlace, result.ThirdPlace, result.ExtraInfo,
	).Scan(&result.ID)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrResultInvalidTournament
	}
	return err
}
