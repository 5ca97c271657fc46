package server

import "sort"

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	Level    int
	seq      int // Used for deterministic tie-break when scores are equal
}

// Leaderboard keeps the best finished games of this process in memory.
// Not safe for concurrent use; the Server guards it.
type Leaderboard struct {
	limit   int
	entries []TopScoreEntry
	nextSeq int
}

// NewLeaderboard creates a leaderboard holding at most limit entries.
func NewLeaderboard(limit int) *Leaderboard {
	if limit < 1 {
		limit = 1
	}
	return &Leaderboard{limit: limit}
}

// Add records a finished game. Returns true if it made the board.
// Equal scores keep their arrival order.
func (l *Leaderboard) Add(username string, score, level int) bool {
	if score <= 0 {
		return false
	}
	l.nextSeq++
	entry := TopScoreEntry{Username: username, Score: score, Level: level, seq: l.nextSeq}

	l.entries = append(l.entries, entry)
	sort.SliceStable(l.entries, func(i, j int) bool {
		if l.entries[i].Score != l.entries[j].Score {
			return l.entries[i].Score > l.entries[j].Score
		}
		return l.entries[i].seq < l.entries[j].seq
	})
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
	for _, e := range l.entries {
		if e.seq == entry.seq {
			return true
		}
	}
	return false
}

// Top returns a copy of the current entries, best first.
func (l *Leaderboard) Top() []TopScoreEntry {
	return append([]TopScoreEntry(nil), l.entries...)
}
