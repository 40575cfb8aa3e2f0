package domain

// SkipStep is the fixed podcast forward/backward step in seconds.
const SkipStep = 90

// ListenCounter credits play listens to a creator. The platform implements
// it over the artist accounts; a nil counter disables crediting.
type ListenCounter interface {
	AddListens(creator string, n int)
}

type podcastBookmark struct {
	index  int
	offset int
}

// Session is a single listener's player. It owns the cursor, the pause
// state, the pending-ad side channel and the per-podcast resume bookmarks,
// and appends to the listener's event log on every state change.
type Session struct {
	kind      SourceKind
	cursor    *Cursor
	repeat    RepeatMode
	shuffle   bool
	paused    bool
	premium   bool
	pendingAd *Track
	bookmarks map[string]podcastBookmark // keyed by collection identity
	log       *EventLog
	counter   ListenCounter
}

// NewSession creates a paused, empty session recording into log.
func NewSession(log *EventLog, counter ListenCounter) *Session {
	return &Session{
		paused:    true,
		bookmarks: make(map[string]podcastBookmark),
		log:       log,
		counter:   counter,
	}
}

// Current returns the track under the cursor, nil when nothing is loaded.
func (s *Session) Current() *Track {
	if s.cursor == nil {
		return nil
	}
	return s.cursor.Current()
}

// CurrentCollection returns the loaded collection, nil for single tracks.
func (s *Session) CurrentCollection() *Collection {
	if s.cursor == nil {
		return nil
	}
	return s.cursor.source.Collection
}

// Paused reports the pause state.
func (s *Session) Paused() bool { return s.paused }

// Shuffled reports whether the shuffle order is in use.
func (s *Session) Shuffled() bool { return s.shuffle }

// RepeatMode returns the active repeat mode.
func (s *Session) RepeatMode() RepeatMode { return s.repeat }

// Premium reports the subscription flag stamped onto recorded snapshots.
func (s *Session) Premium() bool { return s.premium }

// SetPremium flips the subscription flag for future recordings.
func (s *Session) SetPremium(premium bool) { s.premium = premium }

// Remaining returns the seconds left on the current track.
func (s *Session) Remaining() int {
	if s.cursor == nil {
		return 0
	}
	return s.cursor.Remaining()
}

// Load replaces the session's source. A previously loaded podcast is
// bookmarked first. Loading the ad sentinel only parks it in the pending
// slot: an ad never becomes the playable source. The session comes up
// paused with repeat and shuffle reset, and the load itself is recorded as
// one collection-level and one file-level play event.
func (s *Session) Load(src Source) error {
	if src.Kind.IsCollection() {
		if src.Collection == nil || len(src.Collection.Tracks) == 0 {
			return ErrEmptyCollection
		}
	} else if src.Track == nil {
		return ErrNothingPlaying
	}

	if s.kind == KindPodcast {
		s.bookmark()
	}

	if src.Track != nil && src.Track.IsAd() {
		s.pendingAd = src.Track
		return nil
	}
	s.pendingAd = nil

	s.kind = src.Kind
	index, offset := 0, 0
	if src.Kind == KindPodcast {
		if bm, ok := s.bookmarks[src.Collection.ID]; ok {
			index, offset = bm.index, bm.offset
		}
	}
	s.cursor = NewCursor(src, index, offset)
	s.repeat = NoRepeat
	s.shuffle = false
	s.paused = true

	s.record()
	return nil
}

// PlayPause toggles the pause state.
func (s *Session) PlayPause() error {
	if s.Current() == nil {
		return ErrNothingPlaying
	}
	s.paused = !s.paused
	return nil
}

// CycleRepeat advances the repeat mode through the five-state cycle. The
// branch out of NoRepeat depends on the source kind: single tracks go
// through RepeatOnce and RepeatInfinite, collections through RepeatAll and
// RepeatCurrent.
func (s *Session) CycleRepeat() (RepeatMode, error) {
	if s.Current() == nil {
		return NoRepeat, ErrNothingPlaying
	}

	switch s.repeat {
	case NoRepeat:
		if s.kind == KindSong {
			s.repeat = RepeatOnce
		} else {
			s.repeat = RepeatAll
		}
	case RepeatOnce:
		s.repeat = RepeatInfinite
	case RepeatAll:
		s.repeat = RepeatCurrent
	default:
		s.repeat = NoRepeat
	}
	return s.repeat, nil
}

// ToggleShuffle flips shuffle on playlists and albums. A non-nil seed
// regenerates the stored permutation first; toggling off keeps the order
// for later reuse.
func (s *Session) ToggleShuffle(seed *int64) (bool, error) {
	if s.Current() == nil {
		return false, ErrNothingPlaying
	}
	if s.kind != KindPlaylist && s.kind != KindAlbum {
		return false, ErrNotShuffleable
	}
	if seed != nil {
		s.cursor.GenerateShuffleOrder(*seed)
	}
	s.shuffle = !s.shuffle
	return s.shuffle, nil
}

// Simulate advances the session through elapsed seconds of playback:
// whole tracks are consumed through advance, and whatever remains is an
// intra-track skip that emits no event.
func (s *Session) Simulate(elapsed int) {
	if s.paused {
		return
	}
	for !s.paused && s.cursor != nil && elapsed >= s.cursor.Remaining() {
		elapsed -= s.cursor.Remaining()
		s.advance()
	}
	if !s.paused && s.cursor != nil {
		s.cursor.Consume(elapsed)
	}
}

// AdvanceToNext skips to the next track in playback order.
func (s *Session) AdvanceToNext() error {
	if s.Current() == nil {
		return ErrNothingPlaying
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	if s.pendingAd != nil {
		// the displaced track is done, so the ad finally gets recorded:
		// it could still have been interrupted after debuting
		s.log.RecordAd(s.pendingAd)
		s.pendingAd = nil
	}

	s.paused = s.cursor.Advance(s.repeat, s.shuffle)
	if s.repeat == RepeatOnce {
		s.repeat = NoRepeat
	}

	if s.paused && s.cursor.Remaining() == 0 {
		s.stop()
		return
	}
	s.record()
}

// RetreatToPrevious moves one step back in playback order and resumes.
func (s *Session) RetreatToPrevious() error {
	if s.Current() == nil {
		return ErrNothingPlaying
	}
	s.cursor.Retreat(s.shuffle)
	s.record()
	s.paused = false
	return nil
}

// SkipForward jumps 90 seconds ahead in a podcast.
func (s *Session) SkipForward() error {
	return s.skip(SkipStep)
}

// SkipBackward rewinds a podcast by 90 seconds.
func (s *Session) SkipBackward() error {
	return s.skip(-SkipStep)
}

func (s *Session) skip(delta int) error {
	if s.Current() == nil {
		return ErrNothingPlaying
	}
	if s.kind != KindPodcast {
		return ErrNotPodcast
	}
	if s.cursor.Skip(delta) {
		s.record()
	}
	s.paused = false
	return nil
}

// InsertAd parks an ad break to be recorded once the current track is
// displaced. It requires an actively playing musical source.
func (s *Session) InsertAd(ad Track) error {
	if s.Current() == nil || !s.kind.IsMusical() {
		return ErrNoMusicPlaying
	}
	// pause state is untouched: the ad does not actually load
	s.pendingAd = &ad
	return nil
}

// Stop halts playback, bookmarking podcasts, and clears the loaded source.
func (s *Session) Stop() {
	s.stop()
}

func (s *Session) stop() {
	if s.kind == KindPodcast {
		s.bookmark()
	}
	s.kind = ""
	s.cursor = nil
	s.repeat = NoRepeat
	s.shuffle = false
	s.paused = true
}

func (s *Session) bookmark() {
	if s.cursor == nil || s.cursor.Current() == nil {
		return
	}
	col := s.cursor.source.Collection
	if col == nil {
		return
	}
	s.bookmarks[col.ID] = podcastBookmark{
		index:  s.cursor.Index(),
		offset: s.cursor.Offset(),
	}
}

// record appends one collection-level and one file-level play event for
// the current cursor position.
func (s *Session) record() {
	if s.cursor == nil {
		return
	}

	if col := s.cursor.source.Collection; col != nil {
		switch s.kind {
		case KindAlbum:
			s.log.RecordCollection(col.Name, col.Owner, EntryAlbum)
		case KindPlaylist:
			s.log.RecordCollection(col.Name, col.Owner, EntryPlaylist)
		case KindPodcast:
			s.log.RecordCollection(col.Name, col.Owner, EntryPodcast)
		default:
			panic("domain: no valid audio collection kind")
		}
	}

	t := s.cursor.Current()
	if t == nil {
		return
	}

	switch s.kind {
	case KindSong, KindAlbum, KindPlaylist:
		// only a standalone single counts its album through the song's
		// album field; collection plays already recorded their own entry
		s.log.RecordSong(t, s.premium, s.cursor.source.Collection == nil)
		if !t.IsAd() && s.counter != nil {
			// one listen for the song, one for its album
			s.counter.AddListens(t.Creator, 2)
		}
	case KindPodcast:
		s.log.RecordEpisode(t.Name, s.cursor.source.Collection.Owner)
	default:
		panic("domain: no valid audio file kind")
	}
}
