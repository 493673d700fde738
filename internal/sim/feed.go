package sim

// FeedEntry is one player-facing message.
type FeedEntry struct {
	Tick    int
	Speaker string // archetype display name, or "" for system messages
	Message string
}

// Feed is a ring buffer of recent messages for the HUD.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed holding at most size entries.
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{entries: make([]FeedEntry, size)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *Feed) Add(tick int, speaker, msg string) {
	n := len(f.entries)
	f.entries[f.head] = FeedEntry{Tick: tick, Speaker: speaker, Message: msg}
	f.head = (f.head + 1) % n
	if f.count < n {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	n := len(f.entries)
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return out
}

// Reset empties the feed.
func (f *Feed) Reset() {
	f.head, f.count = 0, 0
}
