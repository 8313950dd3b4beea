package model

import "time"

// Event is a single view, download or QR scan of a document.
type Event struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Kind       EventKind `json:"event_type"`
	ClientID   string    `json:"client_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DayBucket holds the event counts of one calendar day.
type DayBucket struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Views     int    `json:"views"`
	Downloads int    `json:"downloads"`
	Scans     int    `json:"scans"`
}

// DocumentStats is the per-document counter snapshot used for top lists.
type DocumentStats struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	ViewCount     int64  `json:"view_count"`
	DownloadCount int64  `json:"download_count"`
}

// AnalyticsSummary is the response of the analytics endpoint.
type AnalyticsSummary struct {
	Range     string          `json:"range"`
	Days      int             `json:"days"`
	ChartData []DayBucket     `json:"chart_data"`
	Totals    DayBucket       `json:"totals"`
	TopPDFs   []DocumentStats `json:"top_pdfs"`
}
