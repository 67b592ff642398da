package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
	"golang.org/x/sync/errgroup"
)

// CreateOfficialRequest — официальный турнир, создаётся администратором
// сразу в статусе scheduled, без хоста.
type CreateOfficialRequest struct {
	Name      string  `json:"name"`
	Game      string  `json:"game"`
	Date      string  `json:"date"`
	Slots     int     `json:"slots"`
	PrizePool int64   `json:"prize_pool"`
	EntryFee  int64   `json:"entry_fee"`
	StreamURL *string `json:"stream_url"`
}

type AdminService struct {
	userRepo       repositories.UserRepository
	tournamentRepo repositories.TournamentRepository
	complaintRepo  repositories.ComplaintRepository
	logger         *slog.Logger
}

func NewAdminService(
	userRepo repositories.UserRepository,
	tournamentRepo repositories.TournamentRepository,
	complaintRepo repositories.ComplaintRepository,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		tournamentRepo: tournamentRepo,
		complaintRepo:  complaintRepo,
		logger:         logger,
	}
}

// DashboardSummary собирает агрегаты панели. Счётчики независимы, поэтому
// выполняются параллельно.
func (s *AdminService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.TotalUsers, err = s.userRepo.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.ActiveUsers, err = s.userRepo.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.TotalTournaments, err = s.tournamentRepo.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.LiveTournaments, err = s.tournamentRepo.CountByStatus(gctx, models.StatusLive)
		return err
	})
	g.Go(func() (err error) {
		summary.PendingTournaments, err = s.tournamentRepo.CountByStatus(gctx, models.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		summary.TotalPrizePool, err = s.tournamentRepo.SumPrizePoolByStatus(gctx, models.StatusLive)
		return err
	})
	g.Go(func() (err error) {
		summary.PendingComplaints, err = s.complaintRepo.CountByStatus(gctx, models.ComplaintOpen)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *AdminService) ListPendingTournaments(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.ListByStatus(ctx, models.StatusPending)
}

func (s *AdminService) ListOfficialTournaments(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.ListOfficial(ctx)
}

// Approve: pending → scheduled, турнир открывается для регистрации.
func (s *AdminService) Approve(ctx context.Context, id int64) error {
	err := s.tournamentRepo.UpdateStatusFrom(ctx, nil, id, models.StatusPending, models.StatusScheduled)
	if err != nil {
		return s.mapTransitionError(ctx, id, err)
	}
	s.logger.Info("tournament approved", slog.Int64("tournament_id", id))
	return nil
}

// Reject: pending → rejected, терминальное состояние.
func (s *AdminService) Reject(ctx context.Context, id int64) error {
	err := s.tournamentRepo.UpdateStatusFrom(ctx, nil, id, models.StatusPending, models.StatusRejected)
	if err != nil {
		return s.mapTransitionError(ctx, id, err)
	}
	s.logger.Info("tournament rejected", slog.Int64("tournament_id", id))
	return nil
}

func (s *AdminService) CreateOfficial(ctx context.Context, req CreateOfficialRequest) (*models.Tournament, error) {
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

	t := &models.Tournament{
		Name:          req.Name,
		Game:          req.Game,
		Status:        models.StatusScheduled,
		CreatedBy:     "Admin",
		Slots:         req.Slots,
		EntryFee:      req.EntryFee,
		PrizePool:     req.PrizePool,
		BigPrizePool:  req.PrizePool >= models.BigPrizePoolThreshold,
		Official:      true,
		ScheduledText: req.Date,
		StreamURL:     req.StreamURL,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *AdminService) ListOpenComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.complaintRepo.ListByStatus(ctx, models.ComplaintOpen)
}

func (s *AdminService) ResolveComplaint(ctx context.Context, id int64) error {
	err := s.complaintRepo.UpdateStatus(ctx, id, models.ComplaintResolved)
	if errors.Is(err, repositories.ErrComplaintNotFound) {
		return ErrComplaintNotFound
	}
	return err
}

func (s *AdminService) mapTransitionError(ctx context.Context, id int64, err error) error {
	if errors.Is(err, repositories.ErrTournamentStateConflict) {
		if _, getErr := s.tournamentRepo.GetByID(ctx, nil, id); errors.Is(getErr, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return ErrInvalidStatusTransition
	}
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}
