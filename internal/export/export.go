// Package export turns finalized records into shareable documents.
package export

import "github.com/filhoindependente/detoxquiz/internal/quiz"

// PresentationCopy is the level-dependent text handed to document adapters.
// It is derived deterministically from the record's risk level.
type PresentationCopy struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	LevelName string   `json:"level_name"`
	Message   string   `json:"message"`
	Actions   []string `json:"actions"`
	Footer    string   `json:"footer"`
	LogoRef   string   `json:"logo_ref"`
}

// Result is a rendered document ready to be served or written out.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Adapter renders one record into a document. The CSV adapter lives here;
// richer renderers (PDF) are supplied by the embedding application.
type Adapter interface {
	ToDocument(rec *quiz.Record, copy PresentationCopy) (*Result, error)
}
