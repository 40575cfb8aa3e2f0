package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/solara-labs/cadenza/internal/core/domain"
)

// SongInput describes a song to register, standalone or inside an album.
type SongInput struct {
	Name     string
	Album    string
	Genre    string
	Duration int
	Price    float64
}

// EpisodeInput describes a podcast episode to register.
type EpisodeInput struct {
	Name     string
	Duration int
}

// Catalog is the in-memory content registry. Tracks are shared by pointer
// between the song list, albums and playlists, so likes and price changes
// propagate everywhere a track appears.
type Catalog struct {
	mu        sync.RWMutex
	songs     []*domain.Track
	albums    []*domain.Collection
	podcasts  []*domain.Collection
	playlists []*domain.Collection
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// AddSong registers a standalone single.
func (c *Catalog) AddSong(creator string, in SongInput) (*domain.Track, error) {
	if in.Duration <= 0 {
		return nil, fmt.Errorf("song %q: %w", in.Name, domain.ErrInvalidDuration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.songs {
		if s.Name == in.Name && s.Creator == creator {
			return nil, fmt.Errorf("song %q by %q: %w", in.Name, creator, domain.ErrDuplicateName)
		}
	}

	t := &domain.Track{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Creator:  creator,
		Album:    in.Album,
		Genre:    in.Genre,
		Duration: in.Duration,
		Price:    in.Price,
	}
	c.songs = append(c.songs, t)
	return t, nil
}

// AddAlbum registers an album and its songs. The album's tracks also enter
// the global song list.
func (c *Catalog) AddAlbum(owner, name string, songs []SongInput) (*domain.Collection, error) {
	if len(songs) == 0 {
		return nil, fmt.Errorf("album %q: %w", name, domain.ErrEmptyCollection)
	}
	for _, in := range songs {
		if in.Duration <= 0 {
			return nil, fmt.Errorf("song %q: %w", in.Name, domain.ErrInvalidDuration)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, al := range c.albums {
		if al.Name == name && al.Owner == owner {
			return nil, fmt.Errorf("album %q by %q: %w", name, owner, domain.ErrDuplicateName)
		}
	}

	album := &domain.Collection{
		ID:    uuid.NewString(),
		Name:  name,
		Owner: owner,
		Kind:  domain.KindAlbum,
	}
	for _, in := range songs {
		t := &domain.Track{
			ID:       uuid.NewString(),
			Name:     in.Name,
			Creator:  owner,
			Album:    name,
			Genre:    in.Genre,
			Duration: in.Duration,
			Price:    in.Price,
		}
		album.Tracks = append(album.Tracks, t)
		c.songs = append(c.songs, t)
	}
	c.albums = append(c.albums, album)
	return album, nil
}

// AddPodcast registers a podcast and its episodes. Episodes live only
// inside the podcast; they never enter the song list.
func (c *Catalog) AddPodcast(owner, name string, episodes []EpisodeInput) (*domain.Collection, error) {
	if len(episodes) == 0 {
		return nil, fmt.Errorf("podcast %q: %w", name, domain.ErrEmptyCollection)
	}
	for _, in := range episodes {
		if in.Duration <= 0 {
			return nil, fmt.Errorf("episode %q: %w", in.Name, domain.ErrInvalidDuration)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pc := range c.podcasts {
		if pc.Name == name && pc.Owner == owner {
			return nil, fmt.Errorf("podcast %q by %q: %w", name, owner, domain.ErrDuplicateName)
		}
	}

	podcast := &domain.Collection{
		ID:    uuid.NewString(),
		Name:  name,
		Owner: owner,
		Kind:  domain.KindPodcast,
	}
	for _, in := range episodes {
		podcast.Tracks = append(podcast.Tracks, &domain.Track{
			ID:       uuid.NewString(),
			Name:     in.Name,
			Duration: in.Duration,
		})
	}
	c.podcasts = append(c.podcasts, podcast)
	return podcast, nil
}

// CreatePlaylist builds a playlist from existing catalog songs, referenced
// by name. The playlist shares the catalog's track pointers.
func (c *Catalog) CreatePlaylist(owner, name string, songNames []string) (*domain.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pl := range c.playlists {
		if pl.Name == name && pl.Owner == owner {
			return nil, fmt.Errorf("playlist %q by %q: %w", name, owner, domain.ErrDuplicateName)
		}
	}

	playlist := &domain.Collection{
		ID:    uuid.NewString(),
		Name:  name,
		Owner: owner,
		Kind:  domain.KindPlaylist,
	}
	for _, songName := range songNames {
		t := c.findSong(songName)
		if t == nil {
			return nil, fmt.Errorf("song %q: %w", songName, domain.ErrNotFound)
		}
		playlist.Tracks = append(playlist.Tracks, t)
	}
	c.playlists = append(c.playlists, playlist)
	return playlist, nil
}

// Resolve finds a playable source by kind and name.
func (c *Catalog) Resolve(kind domain.SourceKind, name string) (domain.Source, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch kind {
	case domain.KindSong:
		if t := c.findSong(name); t != nil {
			return domain.SingleSource(t), nil
		}
	case domain.KindAlbum:
		if col := findCollection(c.albums, name); col != nil {
			return domain.CollectionSource(col), nil
		}
	case domain.KindPlaylist:
		if col := findCollection(c.playlists, name); col != nil {
			return domain.CollectionSource(col), nil
		}
	case domain.KindPodcast:
		if col := findCollection(c.podcasts, name); col != nil {
			return domain.CollectionSource(col), nil
		}
	}
	return domain.Source{}, fmt.Errorf("%s %q: %w", kind, name, domain.ErrNotFound)
}

// Like increments a song's like counter. The change is visible through
// every album and playlist holding the track.
func (c *Catalog) Like(songID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.songs {
		if s.ID == songID {
			s.Likes++
			return s.Likes, nil
		}
	}
	return 0, fmt.Errorf("song %s: %w", songID, domain.ErrNotFound)
}

// SetPrice updates a song's price. Play events already recorded keep the
// price they were recorded at.
func (c *Catalog) SetPrice(songID string, price float64) error {
	if price < 0 {
		return domain.ErrNegativePrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.songs {
		if s.ID == songID {
			s.Price = price
			return nil
		}
	}
	return fmt.Errorf("song %s: %w", songID, domain.ErrNotFound)
}

func (c *Catalog) findSong(name string) *domain.Track {
	for _, s := range c.songs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func findCollection(cols []*domain.Collection, name string) *domain.Collection {
	for _, col := range cols {
		if col.Name == name {
			return col
		}
	}
	return nil
}
