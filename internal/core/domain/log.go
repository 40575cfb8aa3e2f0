package domain

import "strings"

// EntryType classifies a recorded occurrence.
type EntryType string

const (
	EntrySong     EntryType = "song"
	EntryAlbum    EntryType = "album"
	EntryPlaylist EntryType = "playlist"
	EntryPodcast  EntryType = "podcast"
	EntryEpisode  EntryType = "episode"
)

// RecordedEntry is an occurrence-counting key. Two entries are the same
// when their name and creator match case-insensitively within a type; the
// display casing of the first recording wins.
type RecordedEntry struct {
	Name    string
	Creator string
	Type    EntryType
}

type entryKey struct {
	name    string
	creator string
	typ     EntryType
}

func (e RecordedEntry) key() entryKey {
	return entryKey{
		name:    strings.ToLower(e.Name),
		creator: strings.ToLower(e.Creator),
		typ:     e.Type,
	}
}

// Occurrence pairs a recorded entry with its play count.
type Occurrence struct {
	RecordedEntry
	Count int
}

// LogEntry is a snapshot copy of a track at the moment it was played,
// decoupled from the catalog: later price or metadata changes never alter
// it. Revenue is accumulated onto the snapshot by the revenue engine and
// is never touched elsewhere.
type LogEntry struct {
	Name    string
	Creator string
	Album   string
	Genre   string
	Price   float64
	Premium bool
	Revenue float64
}

// IsAd reports whether the entry is an ad-break sentinel.
func (e *LogEntry) IsAd() bool {
	return e.Name == AdBreakName
}

// EventLog is a single listener's play history: an aggregated occurrence
// map for statistics and a strictly time-ordered, append-only list of
// track snapshots for revenue settlement.
type EventLog struct {
	occurrences map[entryKey]*Occurrence
	order       []entryKey // first-seen order, for deterministic iteration
	genres      map[string]int
	entries     []*LogEntry
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{
		occurrences: make(map[entryKey]*Occurrence),
		genres:      make(map[string]int),
	}
}

func (l *EventLog) bump(e RecordedEntry) {
	k := e.key()
	if occ, ok := l.occurrences[k]; ok {
		occ.Count++
		return
	}
	l.occurrences[k] = &Occurrence{RecordedEntry: e, Count: 1}
	l.order = append(l.order, k)
}

// RecordCollection counts a play of the active collection.
func (l *EventLog) RecordCollection(name, owner string, t EntryType) {
	l.bump(RecordedEntry{Name: name, Creator: owner, Type: t})
}

// RecordEpisode counts a play of a podcast episode, credited to the
// podcast's owner. Episodes never enter the ordered snapshot log.
func (l *EventLog) RecordEpisode(name, owner string) {
	l.bump(RecordedEntry{Name: name, Creator: owner, Type: EntryEpisode})
}

// RecordSong appends a snapshot of the played song and counts the
// occurrence. Ad sentinels are appended to the ordered log only; they are
// not part of the statistical population. With bumpAlbum set the song's
// album occurrence is counted too; that is reserved for standalone plays
// with no collection record of their own.
func (l *EventLog) RecordSong(t *Track, premium, bumpAlbum bool) {
	l.entries = append(l.entries, &LogEntry{
		Name:    t.Name,
		Creator: t.Creator,
		Album:   t.Album,
		Genre:   t.Genre,
		Price:   t.Price,
		Premium: premium,
	})

	if t.IsAd() {
		return
	}

	l.bump(RecordedEntry{Name: t.Name, Creator: t.Creator, Type: EntrySong})
	l.genres[t.Genre]++

	if bumpAlbum {
		l.bump(RecordedEntry{Name: t.Album, Creator: t.Creator, Type: EntryAlbum})
	}
}

// RecordAd appends the pending ad-break snapshot. Ads are always recorded
// as free listens.
func (l *EventLog) RecordAd(ad *Track) {
	l.entries = append(l.entries, &LogEntry{
		Name:    ad.Name,
		Creator: ad.Creator,
		Album:   ad.Album,
		Genre:   ad.Genre,
		Price:   ad.Price,
	})
}

// Entries exposes the ordered snapshot log. Only the revenue engine may
// mutate the Revenue fields of the returned entries.
func (l *EventLog) Entries() []*LogEntry {
	return l.entries
}

// Occurrences returns the aggregated play counts in first-seen order.
func (l *EventLog) Occurrences() []Occurrence {
	out := make([]Occurrence, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, *l.occurrences[k])
	}
	return out
}

// Genres returns a copy of the listened-genre counts.
func (l *EventLog) Genres() map[string]int {
	out := make(map[string]int, len(l.genres))
	for g, n := range l.genres {
		out[g] = n
	}
	return out
}

// CountFor sums the occurrence counts of a given type credited to creator,
// matching case-insensitively.
func (l *EventLog) CountFor(creator string, t EntryType) int {
	total := 0
	for _, k := range l.order {
		occ := l.occurrences[k]
		if occ.Type == t && strings.EqualFold(occ.Creator, creator) {
			total += occ.Count
		}
	}
	return total
}
