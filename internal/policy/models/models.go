package models

import (
	"time"

	id "caresure/pkg/domain"
)

// Policy is an insurer-issued coverage offering. Terms are fixed at creation;
// only the active flag may change afterwards.
type Policy struct {
	ID         id.PolicyID
	InsurerID  id.InsurerID
	Name       string
	Coverage   string
	Premium    int64
	CoverLimit int64
	TermDays   int
	Active     bool
	CreatedAt  time.Time
}
