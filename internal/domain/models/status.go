// internal/domain/models/status.go
package models

// Status is a row of the fixed status lookup set. The set is seeded once in
// EnsureSchema and never created or deleted at runtime; reports reference
// statuses by id.
type Status struct {
	ID   int    `bson:"_id" json:"status_id"`
	Name string `bson:"status" json:"status"`
}

// Fixed status ids.
const (
	StatusPending  = 1
	StatusApproved = 2
	StatusRejected = 3
	StatusDraft    = 4
	StatusDeleted  = 5
)

// StatusNames maps the fixed ids to their display names.
var StatusNames = map[int]string{
	StatusPending:  "Pending",
	StatusApproved: "Approved",
	StatusRejected: "Rejected",
	StatusDraft:    "Draft",
	StatusDeleted:  "Deleted",
}

// StatusName returns the display name for a status id, or "Unknown" for ids
// outside the fixed set.
func StatusName(id int) string {
	if name, ok := StatusNames[id]; ok {
		return name
	}
	return "Unknown"
}
