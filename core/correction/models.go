package correction

import "time"

// Correction references one stored correction picture for one exercise.
// The blob itself lives in the content-addressed store under Digest; many
// corrections may share a digest, and deleting a correction does not delete
// the blob.
type Correction struct {
	UnitID    int       `json:"unitId" db:"unit_id"`
	Exercise  int       `json:"exercise" db:"exercise"`
	CreatedBy int       `json:"createdBy" db:"created_by"`
	Digest    string    `json:"digest" db:"digest"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
}
