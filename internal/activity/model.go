package activity

import "time"

// Action is what happened to a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
)

// Record is an append-only audit entry. Records are never mutated or deleted
// by normal flows.
type Record struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId"`
	UserID     string    `json:"userId"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}
