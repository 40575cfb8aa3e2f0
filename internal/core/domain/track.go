package domain

// AdBreakName is the sentinel track name used for advertising breaks.
// Ad entries appear in the ordered play log for revenue segmentation but
// are excluded from listening statistics.
const AdBreakName = "Ad Break"

// SourceKind identifies what a session has loaded.
type SourceKind string

const (
	KindSong     SourceKind = "song"
	KindPlaylist SourceKind = "playlist"
	KindAlbum    SourceKind = "album"
	KindPodcast  SourceKind = "podcast"
)

// IsCollection reports whether the kind wraps an ordered track sequence.
func (k SourceKind) IsCollection() bool {
	return k == KindPlaylist || k == KindAlbum || k == KindPodcast
}

// IsMusical reports whether the kind can host an ad break.
func (k SourceKind) IsMusical() bool {
	return k == KindSong || k == KindAlbum
}

// Track is a playable unit: a song or a podcast episode. Tracks are shared
// by pointer across every collection that lists them, so a like or price
// change is visible everywhere the track appears.
type Track struct {
	ID       string
	Name     string
	Creator  string // artist for songs, empty for episodes (the podcast owns those)
	Album    string
	Genre    string
	Duration int // seconds
	Likes    int
	Price    float64
}

// IsAd reports whether the track is the ad-break sentinel.
func (t *Track) IsAd() bool {
	return t.Name == AdBreakName
}

// Collection is an ordered sequence of shared tracks: an album, a playlist
// or a podcast.
type Collection struct {
	ID     string
	Name   string
	Owner  string
	Kind   SourceKind
	Tracks []*Track
}

// Duration returns the total duration of the collection in seconds.
func (c *Collection) Duration() int {
	total := 0
	for _, t := range c.Tracks {
		total += t.Duration
	}
	return total
}

// ContainsTrack reports whether the collection lists the given track, by
// identity rather than by value.
func (c *Collection) ContainsTrack(t *Track) bool {
	for _, ct := range c.Tracks {
		if ct == t {
			return true
		}
	}
	return false
}

// Source is the tagged variant a session loads: either a single track or a
// collection, never both.
type Source struct {
	Kind       SourceKind
	Track      *Track
	Collection *Collection
}

// SingleSource wraps a standalone track.
func SingleSource(t *Track) Source {
	return Source{Kind: KindSong, Track: t}
}

// CollectionSource wraps a collection under its own kind.
func CollectionSource(c *Collection) Source {
	return Source{Kind: c.Kind, Collection: c}
}
