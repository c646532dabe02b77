package model

import "time"

type AuditEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	UserID     string    `json:"user_id,omitempty"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AuditQuery struct {
	UserID string
	Action string
	Page   int
	Limit  int
}

type AuditListData struct {
	Items []AuditEntry `json:"items"`
}
