package types

import "strings"

// Subject is a message-bus subject for notification events.
type Subject string

const (
	SubjectChecklistDelete   Subject = "checklist.delete"
	SubjectSystemCountDelete Subject = "system.count.delete"
	SubjectAuditSave         Subject = "audit.save"
	SubjectSaveNew           Subject = "save.new"
	SubjectSaveUpdate        Subject = "save.update"
)

// SubjectSystemUpdate is the per-system subject carrying a new system title.
// The id is trimmed so padded input cannot produce a divergent subject.
func SubjectSystemUpdate(id SystemGroupID) Subject {
	return Subject("system.update." + strings.TrimSpace(string(id)))
}
