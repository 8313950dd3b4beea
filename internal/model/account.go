package model

import "time"

// Account is the per-user profile row: plan flag, storage usage and last payment reference.
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	IsPro       bool      `json:"is_pro"`
	StorageUsed int64     `json:"storage_used"`
	PaymentID   string    `json:"payment_id,omitempty"`
	OrderID     string    `json:"order_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlanLimits describes what an account may store. MaxDocuments of 0 means unlimited.
type PlanLimits struct {
	Plan         string `json:"plan"`
	MaxDocuments int    `json:"max_documents"`
	StorageBytes int64  `json:"storage_bytes"`
}
