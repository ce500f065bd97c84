package domain

import (
	"time"

	"github.com/google/uuid"
)

// Canary is the persisted encryption of CanaryValue under one key.
type Canary struct {
	ID             uuid.UUID
	KeyID          string
	EncryptedValue *EncryptedValue
	CreatedAt      time.Time
}

// CanaryReport summarizes one verification run. Each slice holds key ids.
type CanaryReport struct {
	Verified []string `json:"verified"`
	Created  []string `json:"created"`
	Unusable []string `json:"unusable"`
}

// Healthy reports whether every key passed verification.
func (r *CanaryReport) Healthy() bool {
	return len(r.Unusable) == 0
}
