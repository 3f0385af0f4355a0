package crime

import "time"

type Kind string

const (
	KindArrest  Kind = "arrest"
	KindRobbery Kind = "robbery"
)

// Interaction records one resolved PvP attempt. Records are process-local
// and swept out once older than the configured TTL.
type Interaction struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	InitiatorID int64     `json:"initiator_id"`
	TargetID    int64     `json:"target_id"`
	Success     bool      `json:"success"`
	Amount      int       `json:"amount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
