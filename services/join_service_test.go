package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
	"github.com/Askhat-B/esports-hub/room"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	creds  room.Credentials
	called bool
}

func (g *stubGenerator) Generate() (room.Credentials, error) {
	g.called = true
	return g.creds, nil
}

type stubHub struct {
	events []map[string]interface{}
}

func (h *stubHub) BroadcastTournamentUpdate(tournamentID int64, payload interface{}) {
	if m, ok := payload.(map[string]interface{}); ok {
		h.events = append(h.events, m)
	}
}

var tournamentTestColumns = []string{
	"id", "name", "game", "status", "created_by", "host_user_id", "slots", "joined_count",
	"entry_fee", "prize_pool", "big_prize_pool", "is_official", "scheduled_text",
	"stream_url", "room_id", "room_password", "winner", "prize_delivered", "banner_key", "created_at",
}

var userTestColumns = []string{
	"id", "username", "email", "password_hash", "role", "wallet_balance", "active", "created_at",
}

type tournamentFixture struct {
	id           int64
	status       models.TournamentStatus
	hostUserID   *int64
	slots        int
	joinedCount  int
	entryFee     int64
	roomID       *string
	roomPassword *string
}

func tournamentRows(f tournamentFixture) *sqlmock.Rows {
	return sqlmock.NewRows(tournamentTestColumns).AddRow(
		f.id, "Friday Cup", "CS2", string(f.status), "Host", f.hostUserID,
		f.slots, f.joinedCount, f.entryFee, int64(5000), false,
		false, "2026-09-05 19:00", nil, f.roomID, f.roomPassword,
		nil, false, nil, time.Now(),
	)
}

func userRows(id int64, username string, balance int64) *sqlmock.Rows {
	return sqlmock.NewRows(userTestColumns).AddRow(
		id, username, username+"@example.com", "$2a$12$hash", "user", balance, true, time.Now(),
	)
}

func newJoinServiceForTest(t *testing.T, gen room.Generator, hub LiveBroadcaster) (*JoinService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	svc := NewJoinService(
		db,
		repositories.NewPostgresTournamentRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresParticipantRepository(db),
		gen,
		hub,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc, mock, func() { db.Close() }
}

func expectTournamentLock(mock sqlmock.Sqlmock, f tournamentFixture) {
	mock.ExpectQuery(`FROM tournaments WHERE id = \$1 FOR UPDATE`).
		WithArgs(f.id).
		WillReturnRows(tournamentRows(f))
}

func expectUserLock(mock sqlmock.Sqlmock, id int64, username string, balance int64) {
	mock.ExpectQuery(`FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(userRows(id, username, balance))
}

func expectNotJoined(mock sqlmock.Sqlmock, tournamentID, userID int64) {
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(tournamentID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
}

func TestJoinHappyPathTransfersFeeAndProvisionsRoom(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id:          1,
		status:      models.StatusScheduled,
		hostUserID:  &hostID,
		slots:       16,
		joinedCount: 3,
		entryFee:    500,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM123456", Password: "PW1234"}}
	hub := &stubHub{}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, hub)
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 1000)
	expectNotJoined(mock, 1, 42)
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance \+ \$1`).
		WithArgs(int64(-500), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance \+ \$1`).
		WithArgs(int64(500), hostID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(4))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM123456", "PW1234", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "shroud", int64(42), "shroud@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	result, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TournamentID)
	assert.Equal(t, 4, result.JoinedCount)
	assert.Equal(t, "RM123456", result.RoomID)
	assert.Equal(t, "PW1234", result.RoomPassword)
	assert.True(t, gen.called)

	require.Len(t, hub.events, 1)
	assert.Equal(t, "TOURNAMENT_UPDATED", hub.events[0]["type"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinSelfHostMovesNoMoney(t *testing.T) {
	hostID := int64(42)
	fixture := tournamentFixture{
		id:          1,
		status:      models.StatusScheduled,
		hostUserID:  &hostID,
		slots:       8,
		joinedCount: 0,
		entryFee:    500,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM654321", Password: "PW4321"}}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	// Баланс 300 < взноса 500, но для самовступления хоста денег не нужно.
	expectUserLock(mock, 42, "host", 300)
	expectNotJoined(mock, 1, 42)
	// Никаких UPDATE users: хост вступает в собственный турнир.
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(1))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM654321", "PW4321", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "host", int64(42), "host@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	result, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.JoinedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinOfficialTournamentDebitsWithoutCredit(t *testing.T) {
	fixture := tournamentFixture{
		id:          3,
		status:      models.StatusScheduled,
		hostUserID:  nil, // официальный турнир без хоста
		slots:       64,
		joinedCount: 10,
		entryFee:    100,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM111111", Password: "PW1111"}}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 1000)
	expectNotJoined(mock, 3, 42)
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance \+ \$1`).
		WithArgs(int64(-100), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Кредита нет: взнос остаётся на платформе.
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(11))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM111111", "PW1111", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(3), "shroud", int64(42), "shroud@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	_, err := svc.Join(context.Background(), 3, 42, JoinRequest{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinFreeTournamentSkipsWalletUpdates(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id:          1,
		status:      models.StatusScheduled,
		hostUserID:  &hostID,
		slots:       8,
		joinedCount: 0,
		entryFee:    0,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM222222", Password: "PW2222"}}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 0)
	expectNotJoined(mock, 1, 42)
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(1))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM222222", "PW2222", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "shroud", int64(42), "shroud@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinReusesExistingRoomCredentials(t *testing.T) {
	hostID := int64(7)
	roomID, roomPassword := "RM777777", "PW7777"
	fixture := tournamentFixture{
		id:           1,
		status:       models.StatusScheduled,
		hostUserID:   &hostID,
		slots:        16,
		joinedCount:  5,
		entryFee:     0,
		roomID:       &roomID,
		roomPassword: &roomPassword,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM999999", Password: "PW9999"}}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 0)
	expectNotJoined(mock, 1, 42)
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(6))
	// Никакого UPDATE room_id: существующие данные авторитетны.
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "shroud", int64(42), "shroud@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectCommit()

	result, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	require.NoError(t, err)
	assert.Equal(t, "RM777777", result.RoomID)
	assert.Equal(t, "PW7777", result.RoomPassword)
	assert.False(t, gen.called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinParticipantOverridesFromRequestBody(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id:          1,
		status:      models.StatusScheduled,
		hostUserID:  &hostID,
		slots:       8,
		joinedCount: 0,
		entryFee:    0,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM333333", Password: "PW3333"}}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 0)
	expectNotJoined(mock, 1, 42)
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(1))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM333333", "PW3333", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "s1mple", int64(42), "s1mple@navi.gg", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{Username: "s1mple", Email: "s1mple@navi.gg"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinTournamentNotFound(t *testing.T) {
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tournaments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 99, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinUserNotFound(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 0, entryFee: 0,
	}
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	mock.ExpectQuery(`FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 404, JoinRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRejectsClosedRegistration(t *testing.T) {
	hostID := int64(7)
	for _, status := range []models.TournamentStatus{
		models.StatusPending, models.StatusLive, models.StatusCompleted, models.StatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			fixture := tournamentFixture{
				id: 1, status: status, hostUserID: &hostID,
				slots: 8, joinedCount: 0, entryFee: 0,
			}
			svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
			defer closeDB()

			mock.ExpectBegin()
			expectTournamentLock(mock, fixture)
			expectUserLock(mock, 42, "shroud", 1000)
			mock.ExpectRollback()

			_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
			assert.ErrorIs(t, err, ErrTournamentNotOpen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestJoinTournamentFull(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 8, entryFee: 0,
	}
	hub := &stubHub{}
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, hub)
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 1000)
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrTournamentFull)
	assert.Empty(t, hub.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinInsufficientFunds(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 0, entryFee: 500,
	}
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 499)
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinDuplicateRejected(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 1, entryFee: 500,
	}
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 1000)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinDuplicateRaceMapsUniqueViolation(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 0, entryFee: 0,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM444444", Password: "PW4444"}}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 0)
	expectNotJoined(mock, 1, 42)
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(1))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM444444", "PW4444", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "shroud", int64(42), "shroud@example.com", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "tournament_participants_tournament_id_user_id_key"})
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinCapacityGuardInUpdate(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 7, entryFee: 0,
	}
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 0)
	expectNotJoined(mock, 1, 42)
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrTournamentFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinSerializationFailureIsRetryable(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 0, entryFee: 0,
	}
	gen := &stubGenerator{creds: room.Credentials{RoomID: "RM555555", Password: "PW5555"}}
	hub := &stubHub{}
	svc, mock, closeDB := newJoinServiceForTest(t, gen, hub)
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 0)
	expectNotJoined(mock, 1, 42)
	mock.ExpectQuery(`SET joined_count = joined_count \+ 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"joined_count"}).AddRow(1))
	mock.ExpectExec(`SET room_id = \$1, room_password = \$2`).
		WithArgs("RM555555", "PW5555", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO tournament_participants`).
		WithArgs(int64(1), "shroud", int64(42), "shroud@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, hub.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinDeadlockDuringDebitIsRetryable(t *testing.T) {
	hostID := int64(7)
	fixture := tournamentFixture{
		id: 1, status: models.StatusScheduled, hostUserID: &hostID,
		slots: 8, joinedCount: 0, entryFee: 500,
	}
	svc, mock, closeDB := newJoinServiceForTest(t, &stubGenerator{}, &stubHub{})
	defer closeDB()

	mock.ExpectBegin()
	expectTournamentLock(mock, fixture)
	expectUserLock(mock, 42, "shroud", 1000)
	expectNotJoined(mock, 1, 42)
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance \+ \$1`).
		WithArgs(int64(-500), int64(42)).
		WillReturnError(&pq.Error{Code: "40P01"})
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), 1, 42, JoinRequest{})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
