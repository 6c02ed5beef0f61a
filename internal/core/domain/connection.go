package domain

import (
	"fmt"
	"time"
)

var (
	ErrConnectionNotFound = fmt.Errorf("wearable connection %w", ErrNotFound)
	ErrProfileNotFound    = fmt.Errorf("user profile %w", ErrNotFound)
)

type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Timezone  string    `json:"timezone"`
	IsDemo    bool      `json:"is_demo"`
	CreatedAt time.Time `json:"created_at"`
}

type WearableConnection struct {
	ID           string     `json:"id"`
	Provider     string     `json:"provider"`
	IsActive     bool       `json:"is_active"`
	ConnectedAt  time.Time  `json:"connected_at"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

type SyncResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RecordsSynced int    `json:"records_synced"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
