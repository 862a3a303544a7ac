package domain

import "time"

// HistoryEntry captures the terminal outcome of one query. Entries are
// append-only; a cancelled query is recorded with Executed=false.
type HistoryEntry struct {
	Query        string    `json:"query"`
	Commands     []string  `json:"commands"`
	Executed     bool      `json:"executed"`
	Succeeded    bool      `json:"succeeded"`
	OutputSample string    `json:"output_sample,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
