package services

import (
	"errors"
	"testing"

	"github.com/solara-labs/cadenza/internal/core/domain"
)

func TestCatalog_SharedTrackPointers(t *testing.T) {
	c := NewCatalog()
	album, err := c.AddAlbum("Artist", "Debut", []SongInput{
		{Name: "One", Genre: "pop", Duration: 30, Price: 5},
	})
	if err != nil {
		t.Fatalf("add album: %v", err)
	}
	playlist, err := c.CreatePlaylist("lena", "Favourites", []string{"One"})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	track := album.Tracks[0]
	if !playlist.ContainsTrack(track) {
		t.Fatal("playlist must reference the album's track, not a copy")
	}

	if _, err := c.Like(track.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := c.SetPrice(track.ID, 9); err != nil {
		t.Fatalf("set price: %v", err)
	}
	if got := playlist.Tracks[0]; got.Likes != 1 || got.Price != 9 {
		t.Fatalf("change not visible through the playlist: likes=%d price=%v",
			got.Likes, got.Price)
	}
}

func TestCatalog_DuplicateNames(t *testing.T) {
	c := NewCatalog()
	if _, err := c.AddSong("Artist", SongInput{Name: "One", Duration: 30}); err != nil {
		t.Fatalf("add song: %v", err)
	}

	tests := []struct {
		name string
		op   func() error
	}{
		{
			name: "song per artist",
			op: func() error {
				_, err := c.AddSong("Artist", SongInput{Name: "One", Duration: 30})
				return err
			},
		},
		{
			name: "album per owner",
			op: func() error {
				songs := []SongInput{{Name: "A", Duration: 30}}
				if _, err := c.AddAlbum("Artist", "Debut", songs); err != nil {
					return err
				}
				_, err := c.AddAlbum("Artist", "Debut", songs)
				return err
			},
		},
		{
			name: "podcast per host",
			op: func() error {
				eps := []EpisodeInput{{Name: "Pilot", Duration: 60}}
				if _, err := c.AddPodcast("Host", "Daily", eps); err != nil {
					return err
				}
				_, err := c.AddPodcast("Host", "Daily", eps)
				return err
			},
		},
		{
			name: "playlist per owner",
			op: func() error {
				if _, err := c.CreatePlaylist("lena", "Mix", nil); err != nil {
					return err
				}
				_, err := c.CreatePlaylist("lena", "Mix", nil)
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.op(); !errors.Is(err, domain.ErrDuplicateName) {
				t.Fatalf("expected ErrDuplicateName, got %v", err)
			}
		})
	}

	// same song name under another artist is fine
	if _, err := c.AddSong("Other", SongInput{Name: "One", Duration: 30}); err != nil {
		t.Fatalf("same name, different artist: %v", err)
	}
}

func TestCatalog_Resolve(t *testing.T) {
	c := NewCatalog()
	if _, err := c.AddAlbum("Artist", "Debut", []SongInput{{Name: "One", Duration: 30}}); err != nil {
		t.Fatalf("add album: %v", err)
	}

	src, err := c.Resolve(domain.KindAlbum, "Debut")
	if err != nil {
		t.Fatalf("resolve album: %v", err)
	}
	if src.Kind != domain.KindAlbum || src.Collection == nil {
		t.Fatalf("resolved source: %+v", src)
	}

	// album tracks are resolvable as singles
	src, err = c.Resolve(domain.KindSong, "One")
	if err != nil {
		t.Fatalf("resolve song: %v", err)
	}
	if src.Track == nil || src.Track.Album != "Debut" {
		t.Fatalf("resolved track: %+v", src.Track)
	}

	if _, err := c.Resolve(domain.KindPodcast, "Debut"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_NonPositiveDurationsRejected(t *testing.T) {
	c := NewCatalog()
	tests := []struct {
		name string
		op   func() error
	}{
		{
			name: "zero-duration single",
			op: func() error {
				_, err := c.AddSong("Artist", SongInput{Name: "One"})
				return err
			},
		},
		{
			name: "negative-duration album track",
			op: func() error {
				_, err := c.AddAlbum("Artist", "Debut", []SongInput{
					{Name: "One", Duration: 30},
					{Name: "Two", Duration: -5},
				})
				return err
			},
		},
		{
			name: "zero-duration episode",
			op: func() error {
				_, err := c.AddPodcast("Host", "Daily", []EpisodeInput{{Name: "Pilot"}})
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.op(); !errors.Is(err, domain.ErrInvalidDuration) {
				t.Fatalf("expected ErrInvalidDuration, got %v", err)
			}
		})
	}
}

func TestCatalog_EmptyCollectionsRejected(t *testing.T) {
	c := NewCatalog()
	if _, err := c.AddAlbum("Artist", "Debut", nil); !errors.Is(err, domain.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
	if _, err := c.AddPodcast("Host", "Daily", nil); !errors.Is(err, domain.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}
