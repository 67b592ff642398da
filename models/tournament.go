package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusPending   TournamentStatus = "pending"
	StatusScheduled TournamentStatus = "scheduled"
	StatusLive      TournamentStatus = "live"
	StatusCompleted TournamentStatus = "completed"
	StatusRejected  TournamentStatus = "rejected"
)

// BigPrizePoolThreshold — порог призового фонда для пометки big_prize_pool.
const BigPrizePoolThreshold int64 = 100_000

// Tournament представляет турнир.
type Tournament struct {
	ID             int64            `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Game           string           `json:"game" db:"game"`
	Status         TournamentStatus `json:"status" db:"status"`
	CreatedBy      string           `json:"created_by" db:"created_by"`
	HostUserID     *int64           `json:"host_user_id,omitempty" db:"host_user_id"`
	Slots          int              `json:"slots" db:"slots"`
	JoinedCount    int              `json:"joined_count" db:"joined_count"`
	EntryFee       int64            `json:"entry_fee" db:"entry_fee"`
	PrizePool      int64            `json:"prize_pool" db:"prize_pool"`
	BigPrizePool   bool             `json:"big_prize_pool" db:"big_prize_pool"`
	Official       bool             `json:"is_official" db:"is_official"`
	ScheduledText  string           `json:"scheduled_text" db:"scheduled_text"`
	StreamURL      *string          `json:"stream_url,omitempty" db:"stream_url"`
	RoomID         *string          `json:"-" db:"room_id"`
	RoomPassword   *string          `json:"-" db:"room_password"`
	Winner         *string          `json:"winner,omitempty" db:"winner"`
	PrizeDelivered bool             `json:"prize_delivered" db:"prize_delivered"`
	BannerKey      *string          `json:"-" db:"banner_key"`
	BannerURL      *string          `json:"banner_url,omitempty" db:"-"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// HasRoomCredentials: room_id и room_password либо оба заданы, либо оба NULL.
func (t *Tournament) HasRoomCredentials() bool {
	return t.RoomID != nil && t.RoomPassword != nil
}

// IsOpenForRegistration — вступать можно только в запланированный турнир.
func (t *Tournament) IsOpenForRegistration() bool {
	return t.Status == StatusScheduled
}
