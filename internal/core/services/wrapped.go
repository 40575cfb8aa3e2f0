package services

import (
	"sort"
	"strings"

	"github.com/solara-labs/cadenza/internal/core/domain"
)

// topReference caps every wrapped leaderboard.
const topReference = 5

// StatEntry is one leaderboard line of a wrapped report.
type StatEntry struct {
	Name  string `json:"name"`
	Count int    `json:"listens"`
}

// ListenerWrap is a listener's personal listening report.
type ListenerWrap struct {
	TopArtists  []StatEntry `json:"topArtists"`
	TopGenres   []StatEntry `json:"topGenres"`
	TopSongs    []StatEntry `json:"topSongs"`
	TopAlbums   []StatEntry `json:"topAlbums"`
	TopEpisodes []StatEntry `json:"topEpisodes"`
}

// ArtistWrap is an artist's audience report across every listener.
type ArtistWrap struct {
	TopAlbums []StatEntry `json:"topAlbums"`
	TopSongs  []StatEntry `json:"topSongs"`
	TopFans   []string    `json:"topFans"`
	Listeners int         `json:"listeners"`
}

// BuildListenerWrap condenses a listener's event log into leaderboards.
// Artist listens are derived from the album-level occurrences, so a
// standalone single still credits its artist through the synthetic album
// entry.
func BuildListenerWrap(log *domain.EventLog) (ListenerWrap, error) {
	artists := make(map[string]int)
	songs := make(map[string]int)
	albums := make(map[string]int)
	episodes := make(map[string]int)

	for _, occ := range log.Occurrences() {
		switch occ.Type {
		case domain.EntrySong:
			songs[occ.Name] += occ.Count
		case domain.EntryAlbum:
			albums[occ.Name] += occ.Count
			artists[occ.Creator] += occ.Count
		case domain.EntryEpisode:
			episodes[occ.Name] += occ.Count
		}
	}
	genres := log.Genres()

	if len(artists) == 0 && len(genres) == 0 && len(songs) == 0 &&
		len(albums) == 0 && len(episodes) == 0 {
		return ListenerWrap{}, domain.ErrNoData
	}

	return ListenerWrap{
		TopArtists:  sortTop(artists),
		TopGenres:   sortTop(genres),
		TopSongs:    sortTop(songs),
		TopAlbums:   sortTop(albums),
		TopEpisodes: sortTop(episodes),
	}, nil
}

// BuildArtistWrap condenses every listener's event log into the artist's
// audience report. Fans are ranked by their song listens of this artist;
// listeners counts everyone with at least one.
func BuildArtistWrap(artist string, logs map[string]*domain.EventLog) (ArtistWrap, error) {
	songs := make(map[string]int)
	albums := make(map[string]int)
	fans := make(map[string]int)
	listeners := 0

	for username, log := range logs {
		listens := 0
		for _, occ := range log.Occurrences() {
			if !strings.EqualFold(occ.Creator, artist) {
				continue
			}
			switch occ.Type {
			case domain.EntrySong:
				songs[occ.Name] += occ.Count
				listens += occ.Count
			case domain.EntryAlbum:
				albums[occ.Name] += occ.Count
			}
		}
		if listens > 0 {
			fans[username] = listens
			listeners++
		}
	}

	if len(songs) == 0 && len(albums) == 0 && len(fans) == 0 {
		return ArtistWrap{}, domain.ErrNoData
	}

	topFans := sortTop(fans)
	fanNames := make([]string, 0, len(topFans))
	for _, f := range topFans {
		fanNames = append(fanNames, f.Name)
	}

	return ArtistWrap{
		TopAlbums: sortTop(albums),
		TopSongs:  sortTop(songs),
		TopFans:   fanNames,
		Listeners: listeners,
	}, nil
}

// sortTop orders by count descending, name ascending, keeping the top 5.
func sortTop(counts map[string]int) []StatEntry {
	out := make([]StatEntry, 0, len(counts))
	for name, n := range counts {
		out = append(out, StatEntry{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topReference {
		out = out[:topReference]
	}
	return out
}
