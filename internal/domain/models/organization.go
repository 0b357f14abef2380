// internal/domain/models/organization.go
package models

import "time"

// Organization is keyed by its numeric registration number (OrgNr).
// Organizations own zero or more users and are treated as immutable once
// any user references them; the store refuses deletes while referenced.
type Organization struct {
	OrgNr     int64     `bson:"_id" json:"org_nr"`
	OrgName   string    `bson:"org_name" json:"org_name"`
	OrgNameCI string    `bson:"org_name_ci" json:"org_name_ci"` // lowercase, diacritics-stripped
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
