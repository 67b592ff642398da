package models

// DashboardSummary — агрегаты для админской панели.
type DashboardSummary struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	TotalTournaments   int64 `json:"total_tournaments"`
	LiveTournaments    int64 `json:"live_tournaments"`
	PendingTournaments int64 `json:"pending_tournaments"`
	TotalPrizePool     int64 `json:"total_prize_pool"`
	PendingComplaints  int64 `json:"pending_complaints"`
}
