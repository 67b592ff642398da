package models

import "time"

type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintResolved ComplaintStatus = "resolved"
)

type Complaint struct {
	ID        int64           `json:"id"`
	UserName  string          `json:"user_name"`
	Email     string          `json:"email"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Status    ComplaintStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
