package domain

import (
	"reflect"
	"testing"
)

func testAlbum(durations ...int) *Collection {
	col := &Collection{ID: "al-1", Name: "Test Album", Owner: "artist", Kind: KindAlbum}
	for i, d := range durations {
		col.Tracks = append(col.Tracks, &Track{
			ID:       string(rune('a' + i)),
			Name:     "Track " + string(rune('A'+i)),
			Creator:  "artist",
			Album:    "Test Album",
			Duration: d,
		})
	}
	return col
}

func TestCursor_Advance(t *testing.T) {
	tests := []struct {
		name       string
		mode       RepeatMode
		startIndex int
		wantPaused bool
		wantIndex  int
	}{
		{
			name:       "increments mid-collection",
			mode:       NoRepeat,
			startIndex: 0,
			wantPaused: false,
			wantIndex:  1,
		},
		{
			name:       "pauses at the end without repeat",
			mode:       NoRepeat,
			startIndex: 2,
			wantPaused: true,
			wantIndex:  2,
		},
		{
			name:       "wraps to the start on repeat all",
			mode:       RepeatAll,
			startIndex: 2,
			wantPaused: false,
			wantIndex:  0,
		},
		{
			name:       "wraps to the start on repeat infinite",
			mode:       RepeatInfinite,
			startIndex: 2,
			wantPaused: false,
			wantIndex:  0,
		},
		{
			name:       "holds the index on repeat current",
			mode:       RepeatCurrent,
			startIndex: 1,
			wantPaused: false,
			wantIndex:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col := testAlbum(10, 20, 30)
			c := NewCursor(CollectionSource(col), tc.startIndex, 0)

			paused := c.Advance(tc.mode, false)
			if paused != tc.wantPaused {
				t.Fatalf("paused: got %v, want %v", paused, tc.wantPaused)
			}
			if c.Index() != tc.wantIndex {
				t.Fatalf("index: got %d, want %d", c.Index(), tc.wantIndex)
			}
			if !paused && c.Remaining() != col.Tracks[tc.wantIndex].Duration {
				t.Fatalf("remaining: got %d, want full duration %d",
					c.Remaining(), col.Tracks[tc.wantIndex].Duration)
			}
		})
	}
}

func TestCursor_AdvanceSingleTrack(t *testing.T) {
	tests := []struct {
		name       string
		mode       RepeatMode
		wantPaused bool
	}{
		{name: "no repeat exhausts the track", mode: NoRepeat, wantPaused: true},
		{name: "repeat once replays", mode: RepeatOnce, wantPaused: false},
		{name: "repeat infinite replays", mode: RepeatInfinite, wantPaused: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			track := &Track{ID: "t1", Name: "Solo", Creator: "artist", Duration: 45}
			c := NewCursor(SingleSource(track), 0, 0)

			paused := c.Advance(tc.mode, false)
			if paused != tc.wantPaused {
				t.Fatalf("paused: got %v, want %v", paused, tc.wantPaused)
			}
			if tc.wantPaused && c.Remaining() != 0 {
				t.Fatalf("remaining after exhaustion: got %d, want 0", c.Remaining())
			}
			if !tc.wantPaused && c.Remaining() != 45 {
				t.Fatalf("remaining after replay: got %d, want 45", c.Remaining())
			}
		})
	}
}

func TestCursor_AdvanceFollowsShuffleOrder(t *testing.T) {
	col := testAlbum(10, 10, 10, 10)
	c := NewCursor(CollectionSource(col), 0, 0)
	c.GenerateShuffleOrder(42)

	seen := []int{c.Index()}
	// walk the whole permutation from wherever track 0 sits in it
	for {
		if paused := c.Advance(RepeatAll, true); paused {
			t.Fatal("repeat all must never pause")
		}
		if c.Index() == seen[0] {
			break
		}
		seen = append(seen, c.Index())
		if len(seen) > len(col.Tracks) {
			t.Fatalf("walk did not cycle: %v", seen)
		}
	}
	if len(seen) != len(col.Tracks) {
		t.Fatalf("expected to visit %d tracks, visited %v", len(col.Tracks), seen)
	}
}

func TestCursor_Retreat(t *testing.T) {
	col := testAlbum(10, 20, 30)

	t.Run("steps back one track", func(t *testing.T) {
		c := NewCursor(CollectionSource(col), 2, 5)
		c.Retreat(false)
		if c.Index() != 1 {
			t.Fatalf("index: got %d, want 1", c.Index())
		}
		if c.Remaining() != 20 {
			t.Fatalf("remaining: got %d, want full 20", c.Remaining())
		}
	})

	t.Run("stays on the first track at the start", func(t *testing.T) {
		c := NewCursor(CollectionSource(col), 0, 4)
		c.Retreat(false)
		if c.Index() != 0 {
			t.Fatalf("index: got %d, want 0", c.Index())
		}
		if c.Remaining() != 10 {
			t.Fatalf("remaining: got %d, want restarted 10", c.Remaining())
		}
	})
}

func TestCursor_Skip(t *testing.T) {
	tests := []struct {
		name        string
		startIndex  int
		startOffset int
		delta       int
		wantChanged bool
		wantIndex   int
		wantOffset  int
	}{
		{
			name:       "forward inside the track",
			delta:      30,
			wantIndex:  0, wantOffset: 30, wantChanged: true,
		},
		{
			name:       "forward across a boundary",
			delta:      110,
			wantIndex:  1, wantOffset: 10, wantChanged: true,
		},
		{
			name:        "backward across a boundary",
			startIndex:  1,
			startOffset: 20,
			delta:       -50,
			wantIndex:   0, wantOffset: 70, wantChanged: true,
		},
		{
			name:        "backward clamps to the start",
			startOffset: 30,
			delta:       -90,
			wantIndex:   0, wantOffset: 0, wantChanged: true,
		},
		{
			name:        "forward clamps inside the final track",
			startIndex:  2,
			startOffset: 90,
			delta:       90,
			wantIndex:   2, wantOffset: 99, wantChanged: true,
		},
		{
			name:        "no movement reports unchanged",
			startOffset: 0,
			delta:       -10,
			wantIndex:   0, wantOffset: 0, wantChanged: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col := testAlbum(100, 100, 100)
			col.Kind = KindPodcast
			c := NewCursor(CollectionSource(col), tc.startIndex, tc.startOffset)

			changed := c.Skip(tc.delta)
			if changed != tc.wantChanged {
				t.Fatalf("changed: got %v, want %v", changed, tc.wantChanged)
			}
			if c.Index() != tc.wantIndex {
				t.Fatalf("index: got %d, want %d", c.Index(), tc.wantIndex)
			}
			if c.Offset() != tc.wantOffset {
				t.Fatalf("offset: got %d, want %d", c.Offset(), tc.wantOffset)
			}
		})
	}
}

func TestCursor_GenerateShuffleOrder(t *testing.T) {
	col := testAlbum(10, 10, 10, 10, 10, 10)

	a := NewCursor(CollectionSource(col), 0, 0)
	b := NewCursor(CollectionSource(col), 0, 0)
	a.GenerateShuffleOrder(7)
	b.GenerateShuffleOrder(7)
	if !reflect.DeepEqual(a.order, b.order) {
		t.Fatalf("same seed must produce the same permutation: %v vs %v", a.order, b.order)
	}

	b.GenerateShuffleOrder(8)
	if reflect.DeepEqual(a.order, b.order) {
		t.Fatal("a new seed must replace the stored permutation")
	}

	seen := make(map[int]bool)
	for _, idx := range a.order {
		seen[idx] = true
	}
	if len(seen) != len(col.Tracks) {
		t.Fatalf("order is not a permutation: %v", a.order)
	}
}
