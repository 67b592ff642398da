package models

// TournamentResult — итоговая таблица турнира, одна запись на турнир.
type TournamentResult struct {
	ID           int64   `json:"id"`
	TournamentID int64   `json:"tournament_id"`
	FirstPlace   string  `json:"first_place"`
	SecondPlace  string  `json:"second_place"`
	ThirdPlace   string  `json:"third_place"`
	ExtraInfo    *string `json:"extra_info,omitempty"`
}
