// Package model contains the domain types shared by the HTTP, service and repository layers.
// Types here carry JSON tags only; persistence mapping lives in repository implementations.
package model

// Visibility controls who can open a document through its public link.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// EventKind is the type of an analytics event.
type EventKind string

const (
	EventView     EventKind = "view"
	EventDownload EventKind = "download"
	EventQRScan   EventKind = "qr_scan"
)
