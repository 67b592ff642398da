package models

import "time"

// Participant — append-only запись об участии пользователя в турнире.
type Participant struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	Username     string    `json:"username"`
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
}
