package services

import (
	"context"
	"errors"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
)

type SaveResultRequest struct {
	FirstPlace  string  `json:"first_place"`
	SecondPlace string  `json:"second_place"`
	ThirdPlace  string  `json:"third_place"`
	ExtraInfo   *string `json:"extra_info"`
}

type ResultService struct {
	repo           repositories.ResultRepository
	tournamentRepo repositories.TournamentRepository
}

func NewResultService(repo repositories.ResultRepository, tournamentRepo repositories.TournamentRepository) *ResultService {
	return &ResultService{repo: repo, tournamentRepo: tournamentRepo}
}

func (s *ResultService) GetResult(ctx context.Context, tournamentID int64) (*models.TournamentResult, error) {
	result, err := s.repo.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return result, nil
}

func (s *ResultService) SaveResult(ctx context.Context, tournamentID int64, req SaveResultRequest) (*models.TournamentResult, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	result := &models.TournamentResult{
		TournamentID: tournamentID,
		FirstPlace:   req.FirstPlace,
		SecondPlace:  req.SecondPlace,
		ThirdPlace:   req.ThirdPlace,
		ExtraInfo:    req.ExtraInfo,
	}
	if err := s.repo.Upsert(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrResultInvalidTournament) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return result, nil
}
