package domain

import "time"

// SourceMessage is the immutable projection of the external message a
// candidate was derived from. Read-only from this service's perspective;
// rows are written by the ingestion pipeline.
type SourceMessage struct {
	Subject     string    `json:"subject"`
	FromName    string    `json:"from_name"`
	FromEmail   string    `json:"from_email"`
	ReceivedAt  time.Time `json:"received_at"`
	BodySnippet string    `json:"body_snippet"`
	URLs        []string  `json:"urls"`
}
