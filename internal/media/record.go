package media

import "time"

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Record is a single media item from the record source. Fields mirror the
// wire format; the source owns the data and the kiosk never writes it back.
type Record struct {
	ID          string    `json:"id"`
	ConceptName string    `json:"conceptName"`
	CreatedAt   time.Time `json:"createdAt"`
	ImageURL    string    `json:"imageUrl"`
	DownloadURL string    `json:"downloadUrl"`
	Kind        Kind      `json:"kind"`
}

// HasDisplayURL reports whether the record can be rendered directly.
// Records without one still appear on the wall with a placeholder.
func (r Record) HasDisplayURL() bool {
	return r.ImageURL != ""
}
