package model

import "time"

// Document is an uploaded PDF and its sharing metadata.
// PasswordHash never leaves the service; HasPassword is what clients see.
type Document struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Tags          []string   `json:"tags"`
	Slug          string     `json:"slug"`
	StoragePath   string     `json:"storage_path"`
	Visibility    Visibility `json:"visibility"`
	PasswordHash  string     `json:"-"`
	HasPassword   bool       `json:"has_password"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Folder        string     `json:"folder,omitempty"`
	ViewCount     int64      `json:"view_count"`
	DownloadCount int64      `json:"download_count"`
	SizeBytes     int64      `json:"size_bytes"`
	ShareURL      string     `json:"share_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Expired reports whether the document's link has expired at now.
func (d *Document) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && !now.Before(*d.ExpiresAt)
}

// OwnedBy reports whether userID owns the document. An empty userID never owns anything.
func (d *Document) OwnedBy(userID string) bool {
	return userID != "" && d.OwnerID == userID
}
