package model

import "time"

// AuditRecord describes a completed mutation. It is serialized to JSON,
// compressed, and published on the audit subject; it is never persisted here.
type AuditRecord struct {
	Program  string    `json:"program"`
	Created  time.Time `json:"created"`
	Action   string    `json:"action"`
	Message  string    `json:"message"`
	URL      string    `json:"url"`
	UserID   string    `json:"userid"`
	FullName string    `json:"fullname"`
	Username string    `json:"username"`
	Email    string    `json:"email" masq:"secret"`
}
