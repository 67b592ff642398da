package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
	"github.com/Askhat-B/esports-hub/room"
	"github.com/lib/pq"
)

// LiveBroadcaster уведомляет подписчиков турнира об изменениях.
// Вызывается строго после коммита — внутри транзакции нет внешних вызовов.
type LiveBroadcaster interface {
	BroadcastTournamentUpdate(tournamentID int64, payload interface{})
}

// JoinRequest — данные участника из тела запроса. Все поля опциональны:
// пустые значения берутся из записи пользователя.
type JoinRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// JoinResult возвращается после успешного вступления. Комнатные данные
// отдаются прямо здесь — единый контракт join.
type JoinResult struct {
	TournamentID int64  `json:"id"`
	JoinedCount  int    `json:"joined_count"`
	RoomID       string `json:"room_id"`
	RoomPassword string `json:"room_password"`
}

// JoinService координирует вступление в турнир: проверки, списание и
// зачисление взноса, инкремент счётчика, выдача комнаты и запись участника —
// одна сериализуемая транзакция, всё или ничего.
type JoinService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	userRepo        repositories.UserRepository
	participantRepo repositories.ParticipantRepository
	roomGen         room.Generator
	hub             LiveBroadcaster
	logger          *slog.Logger
}

func NewJoinService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	participantRepo repositories.ParticipantRepository,
	roomGen room.Generator,
	hub LiveBroadcaster,
	logger *slog.Logger,
) *JoinService {
	return &JoinService{
		db:              db,
		tournamentRepo:  tournamentRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		roomGen:         roomGen,
		hub:             hub,
		logger:          logger,
	}
}

// Join выполняет вступление пользователя userID в турнир tournamentID.
//
// Предусловия проверяются по порядку, каждое падает своей ошибкой:
// существование турнира и пользователя, открытая регистрация, свободный слот,
// достаточный баланс, отсутствие повторного вступления. Эффекты (дебет
// кошелька, кредит хосту, инкремент joined_count, однократная выдача комнаты,
// запись участника) применяются все вместе или не применяются вовсе.
func (s *JoinService) Join(ctx context.Context, tournamentID, userID int64, req JoinRequest) (*JoinResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin join transaction: %v", ErrStorageUnavailable, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	result, err := s.joinTx(ctx, tx, tournamentID, userID, req)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("join rollback failed",
				slog.Int64("tournament_id", tournamentID),
				slog.Any("error", rbErr))
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, s.mapStorageError(fmt.Errorf("failed to commit join transaction: %w", err))
	}

	s.logger.Info("user joined tournament",
		slog.Int64("tournament_id", tournamentID),
		slog.Int64("user_id", userID),
		slog.Int("joined_count", result.JoinedCount))

	if s.hub != nil {
		s.hub.BroadcastTournamentUpdate(tournamentID, map[string]interface{}{
			"type":          "TOURNAMENT_UPDATED",
			"tournament_id": tournamentID,
			"joined_count":  result.JoinedCount,
		})
	}

	return result, nil
}

func (s *JoinService) joinTx(ctx context.Context, tx *sql.Tx, tournamentID, userID int64, req JoinRequest) (*JoinResult, error) {
	// Блокировка строки турнира сериализует все join этого турнира;
	// разные турниры друг друга не ждут.
	t, err := s.tournamentRepo.GetByIDForUpdate(ctx, tx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.mapStorageError(err)
	}

	u, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.mapStorageError(err)
	}

	if !t.IsOpenForRegistration() {
		return nil, ErrTournamentNotOpen
	}
	if t.JoinedCount >= t.Slots {
		return nil, ErrTournamentFull
	}
	// Хост в собственном турнире взнос не платит, баланс не проверяется.
	selfHost := t.HostUserID != nil && *t.HostUserID == u.ID
	if !selfHost && u.WalletBalance < t.EntryFee {
		return nil, ErrInsufficientFunds
	}

	joined, err := s.participantRepo.ExistsByTournamentAndUser(ctx, tx, tournamentID, userID)
	if err != nil {
		return nil, s.mapStorageError(err)
	}
	if joined {
		return nil, ErrAlreadyJoined
	}

	if err := s.transferEntryFee(ctx, tx, t, u); err != nil {
		return nil, err
	}

	joinedCount, err := s.tournamentRepo.IncrementJoinedCount(ctx, tx, tournamentID)
	if err != nil {
		// Под удержанной блокировкой счётчик не мог уйти вперёд, но guard
		// в самом UPDATE — последняя линия защиты инварианта ёмкости.
		if errors.Is(err, repositories.ErrTournamentCapacityExceeded) {
			return nil, ErrTournamentFull
		}
		return nil, s.mapStorageError(err)
	}

	creds, err := s.provisionRoom(ctx, tx, t)
	if err != nil {
		return nil, err
	}

	username := req.Username
	if username == "" {
		username = u.Username
	}
	if username == "" {
		username = "Player"
	}
	email := req.Email
	if email == "" {
		email = u.Email
	}

	participant := &models.Participant{
		TournamentID: tournamentID,
		Username:     username,
		UserID:       userID,
		Email:        email,
		JoinedAt:     time.Now().UTC(),
	}
	if err := s.participantRepo.Create(ctx, tx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantConflict) {
			return nil, ErrAlreadyJoined
		}
		return nil, s.mapStorageError(err)
	}

	return &JoinResult{
		TournamentID: tournamentID,
		JoinedCount:  joinedCount,
		RoomID:       creds.RoomID,
		RoomPassword: creds.Password,
	}, nil
}

// transferEntryFee списывает взнос с кошелька участника и зачисляет его хосту.
// Хост, вступающий в собственный турнир, денег не перемещает. Оба изменения —
// атомарные инкременты относительно текущего значения строки.
func (s *JoinService) transferEntryFee(ctx context.Context, tx *sql.Tx, t *models.Tournament, u *models.User) error {
	if t.EntryFee == 0 {
		return nil
	}
	selfHost := t.HostUserID != nil && *t.HostUserID == u.ID
	if selfHost {
		return nil
	}

	if err := s.userRepo.AdjustWalletBalance(ctx, tx, u.ID, -t.EntryFee); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return ErrInsufficientFunds
		}
		return s.mapStorageError(err)
	}

	// У официальных турниров хоста нет — взнос остаётся на платформе.
	if t.HostUserID != nil {
		if err := s.userRepo.AdjustWalletBalance(ctx, tx, *t.HostUserID, t.EntryFee); err != nil {
			return s.mapStorageError(err)
		}
	}
	return nil
}

// provisionRoom выдаёт комнатные данные ровно один раз на турнир: существующие
// данные авторитетны и никогда не регенерируются.
func (s *JoinService) provisionRoom(ctx context.Context, tx *sql.Tx, t *models.Tournament) (room.Credentials, error) {
	if t.HasRoomCredentials() {
		return room.Credentials{RoomID: *t.RoomID, Password: *t.RoomPassword}, nil
	}

	creds, err := s.roomGen.Generate()
	if err != nil {
		return room.Credentials{}, fmt.Errorf("failed to provision room credentials: %w", err)
	}

	provisioned, err := s.tournamentRepo.SetRoomCredentials(ctx, tx, t.ID, creds.RoomID, creds.Password)
	if err != nil {
		return room.Credentials{}, s.mapStorageError(err)
	}
	if !provisioned {
		// Недостижимо под блокировкой строки, но если данные уже есть —
		// вернуть именно их, а не свежесгенерированные.
		current, err := s.tournamentRepo.GetByID(ctx, tx, t.ID)
		if err != nil {
			return room.Credentials{}, s.mapStorageError(err)
		}
		if !current.HasRoomCredentials() {
			return room.Credentials{}, fmt.Errorf("room credentials missing after provisioning for tournament %d", t.ID)
		}
		return room.Credentials{RoomID: *current.RoomID, Password: *current.RoomPassword}, nil
	}
	return creds, nil
}

// mapStorageError переводит конфликты сериализации, дедлоки и таймауты в
// ErrStorageUnavailable: транзакция откатилась целиком, повтор безопасен.
func (s *JoinService) mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
