// internal/domain/models/loginrecord.go
package models

import "time"

// LoginRecord captures a single successful login event.
// CreatedAt is indexed for recent-activity views.
type LoginRecord struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	ActiveRole string    `bson:"active_role,omitempty"`
	IP         string    `bson:"ip"`
	CreatedAt  time.Time `bson:"created_at"`
}
