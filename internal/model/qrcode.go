package model

import "time"

// QRKind is what a saved QR code encodes.
type QRKind string

const (
	QRKindPDFURL    QRKind = "pdf_url"
	QRKindCustomURL QRKind = "custom_url"
	QRKindText      QRKind = "text"
	QRKindVCard     QRKind = "vcard"
)

// Valid reports whether k is a known QR kind.
func (k QRKind) Valid() bool {
	switch k {
	case QRKindPDFURL, QRKindCustomURL, QRKindText, QRKindVCard:
		return true
	}
	return false
}

// IsURL reports whether scans of this kind should redirect.
func (k QRKind) IsURL() bool {
	return k == QRKindPDFURL || k == QRKindCustomURL
}

// QRStyle is the rendering configuration stored with a QR code.
type QRStyle struct {
	Foreground string `json:"fg_color"`
	Background string `json:"bg_color"`
	Size       int    `json:"size"`
	Name       string `json:"name,omitempty"`
}

// QRCode is a saved QR configuration owned by an account.
type QRCode struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	DocumentID string    `json:"document_id,omitempty"`
	Kind       QRKind    `json:"type"`
	Payload    string    `json:"data"`
	Style      QRStyle   `json:"config"`
	ScanCount  int64     `json:"scan_count"`
	CreatedAt  time.Time `json:"created_at"`
}
