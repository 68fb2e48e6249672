package model

import "time"

type SongSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tempo  float64 `json:"tempo"`
	Tracks int     `json:"tracks"`
	Bars   int     `json:"bars"`
}

type TrackStats struct {
	Name        string `json:"name"`
	Notes       int    `json:"notes"`
	Controllers int    `json:"controllers"`
	PitchBends  int    `json:"pitch_bends"`
	Lyrics      int    `json:"lyrics"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

// FileSummary describes a rendered .mid file as read back from disk.
type FileSummary struct {
	Path   string       `json:"path"`
	Tempo  float64      `json:"tempo"`
	Ticks  uint32       `json:"ticks"`
	Bars   int          `json:"bars"`
	Tracks []TrackStats `json:"tracks"`
}

// Notes is the note count over all tracks.
func (s FileSummary) Notes() int {
	var total int
	for _, t := range s.Tracks {
		total += t.Notes
	}
	return total
}

// RenderRecord is what gets stored about each file the generator writes.
type RenderRecord struct {
	ID        string    `json:"id"`
	SongID    string    `json:"song_id"`
	Path      string    `json:"path"`
	Tempo     float64   `json:"tempo"`
	Bars      int       `json:"bars"`
	Notes     int       `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type SongDetail struct {
	SongSummary
	Description string       `json:"description"`
	TrackStats  []TrackStats `json:"track_stats"`
}
