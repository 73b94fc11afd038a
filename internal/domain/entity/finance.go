package entity

import (
	"time"

	"github.com/google/uuid"
)

// The finance entities below back the scaffold CRUD modules. They are
// deliberately thin: enough shape for owner-scoped listing and creation while
// the real ingestion/categorization pipeline is still being designed.

// Transaction is a single financial entry belonging to a user.
type Transaction struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"` // Owner of the entry.
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	Amount     int64      `json:"amount"` // Signed amount in minor currency units (cents).
	Currency   string     `json:"currency"`
	Note       string     `json:"note,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Category labels transactions for budgeting and reporting.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Budget is a per-category spending limit over a named period.
type Budget struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	CategoryID uuid.UUID `json:"categoryId"`
	Limit      int64     `json:"limit"`  // Limit in minor currency units.
	Period     string    `json:"period"` // e.g. "monthly".
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Goal is a savings target with a deadline.
type Goal struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Name      string     `json:"name"`
	Target    int64      `json:"target"` // Target amount in minor currency units.
	Saved     int64      `json:"saved"`  // Amount saved so far.
	DueAt     *time.Time `json:"dueAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
