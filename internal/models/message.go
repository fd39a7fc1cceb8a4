package models

import "time"

// Role identifies which party authored a transcript entry. The seller is the
// simulated counterparty; the buyer is the learner.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// Message is one transcript entry. Transcripts are append-only and owned by
// a single session; derived values (extracted terms, agreement state) are
// recomputed from Content on demand rather than cached on the entry.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
