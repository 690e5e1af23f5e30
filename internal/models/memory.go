package models

// Memory is a derived day-bucket of photos for the timeline. It is computed
// from the current photo list on every request and never persisted.
type Memory struct {
	Date             string  `json:"date"` // YYYY-MM-DD, server-local
	Title            string  `json:"title"`
	DominantCategory string  `json:"dominantCategory"`
	PhotoCount       int     `json:"photoCount"`
	Photos           []Photo `json:"photos"`
	Representatives  []Photo `json:"representatives"`
	Narrative        string  `json:"narrative,omitempty"`
}
