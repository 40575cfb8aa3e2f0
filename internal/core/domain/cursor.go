package domain

import (
	"fmt"
	"math/rand"
)

// RepeatMode is the five-state repeat setting of a session.
type RepeatMode int

const (
	NoRepeat RepeatMode = iota
	RepeatOnce
	RepeatAll
	RepeatInfinite
	RepeatCurrent
)

func (m RepeatMode) String() string {
	switch m {
	case NoRepeat:
		return "no repeat"
	case RepeatOnce:
		return "repeat once"
	case RepeatAll:
		return "repeat all"
	case RepeatInfinite:
		return "repeat infinite"
	case RepeatCurrent:
		return "repeat current song"
	}
	return "unknown"
}

// Cursor navigates a loaded source: the current track index, the seconds
// remaining on that track, and an optional seeded shuffle permutation.
// Repeat mode and the shuffle toggle live on the session; the cursor only
// consumes them.
type Cursor struct {
	source    Source
	index     int
	remaining int
	order     []int // shuffle permutation, kept when shuffle is toggled off
}

// NewCursor positions a cursor at the given index and intra-track offset.
// An offset of zero starts the track from the beginning.
func NewCursor(src Source, index, offset int) *Cursor {
	c := &Cursor{source: src, index: index}
	if t := c.Current(); t != nil {
		c.remaining = t.Duration - offset
		if c.remaining <= 0 {
			c.remaining = t.Duration
		}
	}
	return c
}

// Current returns the track under the cursor, or nil when the source holds
// nothing playable.
func (c *Cursor) Current() *Track {
	switch {
	case c.source.Track != nil:
		return c.source.Track
	case c.source.Collection != nil:
		if c.index < 0 || c.index >= len(c.source.Collection.Tracks) {
			return nil
		}
		return c.source.Collection.Tracks[c.index]
	}
	return nil
}

// Remaining returns the seconds left on the current track.
func (c *Cursor) Remaining() int {
	return c.remaining
}

// Index returns the catalog index of the current track.
func (c *Cursor) Index() int {
	return c.index
}

// Offset returns the seconds already played of the current track.
func (c *Cursor) Offset() int {
	if t := c.Current(); t != nil {
		return t.Duration - c.remaining
	}
	return 0
}

// Consume applies elapsed seconds inside the current track. Callers must
// ensure elapsed is strictly less than the remaining duration.
func (c *Cursor) Consume(elapsed int) {
	c.remaining -= elapsed
}

// Advance moves to the next track in playback order and reports whether the
// session should pause afterwards. A paused result with zero remaining
// duration means the source was exhausted.
func (c *Cursor) Advance(mode RepeatMode, shuffle bool) bool {
	switch {
	case c.source.Track != nil:
		if mode == RepeatOnce || mode == RepeatInfinite {
			c.remaining = c.source.Track.Duration
			return false
		}
		c.remaining = 0
		return true
	case c.source.Collection != nil:
		if mode == RepeatCurrent {
			c.remaining = c.Current().Duration
			return false
		}
		tracks := c.source.Collection.Tracks
		pos := c.position(shuffle)
		pos++
		if pos >= len(tracks) {
			if mode == RepeatAll || mode == RepeatInfinite {
				pos = 0
			} else {
				// exhausted: index stays on the final track
				c.remaining = 0
				return true
			}
		}
		c.index = c.trackAt(pos, shuffle)
		c.remaining = c.Current().Duration
		return false
	}
	panic(fmt.Sprintf("domain: cursor has no playable source (kind %q)", c.source.Kind))
}

// Retreat moves one step back in playback order. At the start of the
// collection it stays on the first track; either way the target track
// restarts from the beginning.
func (c *Cursor) Retreat(shuffle bool) {
	if c.source.Collection != nil {
		if pos := c.position(shuffle); pos > 0 {
			c.index = c.trackAt(pos-1, shuffle)
		}
	}
	if t := c.Current(); t != nil {
		c.remaining = t.Duration
	}
}

// Skip moves the audible position by delta seconds, positive forward,
// crossing track boundaries as needed and clamping to the bounds of the
// collection. It reports whether the position changed. Shuffle never
// applies to skips; they follow catalog order.
func (c *Cursor) Skip(delta int) bool {
	col := c.source.Collection
	if col == nil || len(col.Tracks) == 0 {
		return false
	}

	abs := 0
	for i := 0; i < c.index; i++ {
		abs += col.Tracks[i].Duration
	}
	abs += c.Offset()

	target := abs + delta
	if target < 0 {
		target = 0
	}
	if total := col.Duration(); target >= total {
		target = total - 1
	}
	if target == abs {
		return false
	}

	index, offset := 0, target
	for offset >= col.Tracks[index].Duration {
		offset -= col.Tracks[index].Duration
		index++
	}
	c.index = index
	c.remaining = col.Tracks[index].Duration - offset
	return true
}

// GenerateShuffleOrder derives a deterministic permutation of the
// collection's indices from seed, replacing any previous order.
func (c *Cursor) GenerateShuffleOrder(seed int64) {
	col := c.source.Collection
	if col == nil {
		return
	}
	order := make([]int, len(col.Tracks))
	for i := range order {
		order[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	c.order = order
}

// position maps the current index to its slot in playback order.
func (c *Cursor) position(shuffle bool) int {
	if !shuffle || c.order == nil {
		return c.index
	}
	for pos, idx := range c.order {
		if idx == c.index {
			return pos
		}
	}
	return c.index
}

// trackAt maps a playback-order slot back to a catalog index.
func (c *Cursor) trackAt(pos int, shuffle bool) int {
	if !shuffle || c.order == nil {
		return pos
	}
	return c.order[pos]
}
