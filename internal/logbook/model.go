package logbook

import "time"

// Entry is one recorded log of an item, as shown in the daily log book.
type Entry struct {
	ID       int64
	ItemID   int64
	Item     string
	Category int64
	Time     time.Time
	// Text is the rendered comment or the user's override.
	Text    string
	Details map[string]string
}

// DateSection groups the entries recorded on the same local day.
type DateSection struct {
	Date    time.Time
	Entries []Entry
}
