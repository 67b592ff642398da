package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
	"github.com/Askhat-B/esports-hub/storage"
)

// CreateTournamentRequest — заявка пользователя на проведение турнира.
// Попадает в ленту только после одобрения администратором.
type CreateTournamentRequest struct {
	Name       string  `json:"name"`
	Game       string  `json:"game"`
	CreatedBy  string  `json:"created_by"`
	HostUserID *int64  `json:"host_user_id"`
	Date       string  `json:"date"`
	Slots      int     `json:"slots"`
	PrizePool  int64   `json:"prize_pool"`
	EntryFee   int64   `json:"entry_fee"`
	StreamURL  *string `json:"stream_url"`
}

type TournamentService struct {
	repo            repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	uploader        storage.FileUploader
	hub             LiveBroadcaster
	logger          *slog.Logger
}

func NewTournamentService(
	repo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	uploader storage.FileUploader,
	hub LiveBroadcaster,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		repo:            repo,
		participantRepo: participantRepo,
		uploader:        uploader,
		hub:             hub,
		logger:          logger,
	}
}

// CreateRequest регистрирует заявку со статусом pending.
func (s *TournamentService) CreateRequest(ctx context.Context, req CreateTournamentRequest) (*models.Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrTournamentNameRequired
	}
	if strings.TrimSpace(req.Game) == "" {
		return nil, ErrTournamentGameRequired
	}
	if req.Slots <= 0 {
		return nil, ErrTournamentInvalidCapacity
	}
	if req.EntryFee < 0 {
		return nil, ErrNegativeEntryFee
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = "Host"
	}

	t := &models.Tournament{
		Name:          req.Name,
		Game:          req.Game,
		Status:        models.StatusPending,
		CreatedBy:     createdBy,
		HostUserID:    req.HostUserID,
		Slots:         req.Slots,
		JoinedCount:   0,
		EntryFee:      req.EntryFee,
		PrizePool:     req.PrizePool,
		BigPrizePool:  req.PrizePool >= models.BigPrizePoolThreshold,
		Official:      false,
		ScheduledText: req.Date,
		StreamURL:     req.StreamURL,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentInvalidHost) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.populateBannerURL(t)
	return t, nil
}

func (s *TournamentService) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateBannerURL(t)
	return t, nil
}

func (s *TournamentService) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	switch status {
	case models.StatusPending, models.StatusScheduled, models.StatusLive,
		models.StatusCompleted, models.StatusRejected:
	default:
		return nil, fmt.Errorf("%w: unknown tournament status %q", ErrValidationFailed, status)
	}
	list, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	s.populateBannerURLs(list)
	return list, nil
}

func (s *TournamentService) ListHostedBy(ctx context.Context, username string) ([]models.Tournament, error) {
	list, err := s.repo.ListByCreator(ctx, username)
	if err != nil {
		return nil, err
	}
	s.populateBannerURLs(list)
	return list, nil
}

// ListPublic — лента для главного экрана: live, scheduled и completed.
func (s *TournamentService) ListPublic(ctx context.Context) ([]models.Tournament, error) {
	list, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	s.populateBannerURLs(list)
	return list, nil
}

func (s *TournamentService) ListParticipants(ctx context.Context, tournamentID int64) ([]models.Participant, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.participantRepo.ListByTournament(ctx, tournamentID)
}

// Start переводит scheduled → live. Любой другой текущий статус — отказ без
// изменений.
func (s *TournamentService) Start(ctx context.Context, id int64) (*models.Tournament, error) {
	err := s.repo.UpdateStatusFrom(ctx, nil, id, models.StatusScheduled, models.StatusLive)
	if err != nil {
		return nil, s.mapTransitionError(ctx, id, err)
	}
	s.broadcastStatus(id, models.StatusLive)
	return s.GetByID(ctx, id)
}

// Complete переводит live → completed, опционально фиксируя победителя и
// факт выдачи приза. prize_delivered назад не сбрасывается.
func (s *TournamentService) Complete(ctx context.Context, id int64, winner *string, prizeDelivered bool) (*models.Tournament, error) {
	err := s.repo.CompleteTournament(ctx, nil, id, winner, prizeDelivered)
	if err != nil {
		return nil, s.mapTransitionError(ctx, id, err)
	}
	s.broadcastStatus(id, models.StatusCompleted)
	return s.GetByID(ctx, id)
}

// UploadBanner загружает баннер турнира в объектное хранилище и запоминает ключ.
func (s *TournamentService) UploadBanner(ctx context.Context, id int64, contentType string, data io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: banner storage is not configured", ErrValidationFailed)
	}
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/banner", id)
	uploadResult, err := s.uploader.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament banner: %w", err)
	}

	if err := s.repo.UpdateBannerKey(ctx, id, &uploadResult.Key); err != nil {
		return nil, err
	}
	t.BannerKey = &uploadResult.Key
	s.populateBannerURL(t)

	s.logger.Info("tournament banner uploaded",
		slog.Int64("tournament_id", id),
		slog.String("key", uploadResult.Key))
	return t, nil
}

func (s *TournamentService) mapTransitionError(ctx context.Context, id int64, err error) error {
	if errors.Is(err, repositories.ErrTournamentStateConflict) {
		// Отличаем "нет такого турнира" от "не тот статус".
		if _, getErr := s.repo.GetByID(ctx, nil, id); errors.Is(getErr, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return ErrInvalidStatusTransition
	}
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

func (s *TournamentService) broadcastStatus(id int64, status models.TournamentStatus) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastTournamentUpdate(id, map[string]interface{}{
		"type":          "TOURNAMENT_UPDATED",
		"tournament_id": id,
		"status":        status,
	})
}

func (s *TournamentService) populateBannerURL(t *models.Tournament) {
	if t == nil || t.BannerKey == nil || *t.BannerKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*t.BannerKey); url != "" {
		t.BannerURL = &url
	}
}

func (s *TournamentService) populateBannerURLs(list []models.Tournament) {
	for i := range list {
		s.populateBannerURL(&list[i])
	}
}
