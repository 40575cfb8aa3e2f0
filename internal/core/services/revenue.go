package services

import (
	"math"
	"sort"

	"github.com/solara-labs/cadenza/internal/core/domain"
)

// RevenueEngine settles monetization by replaying the listeners' ordered
// play logs at end of run. Premium runs are maximal stretches of
// consecutive premium listens; ad runs are the free listens between two ad
// breaks. Each run's pot is split by the artists' share of the run.
type RevenueEngine struct {
	premiumPrice float64
}

// NewRevenueEngine constructs an engine with the given per-run premium pot.
func NewRevenueEngine(premiumPrice float64) *RevenueEngine {
	return &RevenueEngine{premiumPrice: premiumPrice}
}

// Settle computes the end-of-run report. It mutates the accounts and the
// per-entry revenues of the logs, so it must run at most once per log set.
//
// Ranking starts from the active artists in ascending username order, then
// artists with strictly larger total revenue are swapped ahead pair by
// pair. Ties keep the username order.
func (e *RevenueEngine) Settle(logs []*domain.EventLog, accounts []*domain.ArtistAccount) []domain.Payout {
	active := make([]*domain.ArtistAccount, 0, len(accounts))
	for _, acc := range accounts {
		if acc.Active() {
			active = append(active, acc)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Username < active[j].Username
	})
	for i, acc := range active {
		acc.Ranking = i + 1
	}

	for _, acc := range active {
		for _, log := range logs {
			e.settlePremium(log.Entries(), acc)
			e.settleAds(log.Entries(), acc)
		}
	}
	for _, acc := range active {
		acc.MostProfitableTrack = mostProfitable(logs, acc.Username)
	}

	for i := 0; i < len(active)-1; i++ {
		for j := i + 1; j < len(active); j++ {
			if active[i].TotalRevenue() < active[j].TotalRevenue() {
				active[i].Ranking, active[j].Ranking = active[j].Ranking, active[i].Ranking
				active[i], active[j] = active[j], active[i]
			}
		}
	}

	payouts := make([]domain.Payout, 0, len(active))
	for _, acc := range active {
		payouts = append(payouts, domain.Payout{
			Username:            acc.Username,
			MerchRevenue:        roundCents(acc.MerchRevenue),
			SongRevenue:         roundCents(acc.SongRevenue),
			Ranking:             acc.Ranking,
			MostProfitableTrack: acc.MostProfitableTrack,
		})
	}
	return payouts
}

// settlePremium closes a premium run at the first non-premium entry after
// it, or at the end of the log. The artist's cut of the pot is
// premiumPrice * ownEntries / runLength, credited to the account once per
// run and spread over the artist's entries in the run.
func (e *RevenueEngine) settlePremium(entries []*domain.LogEntry, acc *domain.ArtistAccount) {
	const unset = -1
	start := unset
	total, byArtist := 0, 0

	for i, entry := range entries {
		if entry.Premium {
			total++
			if start == unset {
				start = i
			}
			if entry.Creator == acc.Username {
				byArtist++
			}
		}

		if (!entry.Premium || i == len(entries)-1) && total != 0 {
			run := e.premiumPrice * float64(byArtist) / float64(total)

			for j := start; j < i; j++ {
				if !entries[j].Premium || entries[j].Creator != acc.Username {
					continue
				}
				entries[j].Revenue += run / float64(total)
			}
			if last := entries[i]; i == len(entries)-1 && last.Premium &&
				last.Creator == acc.Username {
				last.Revenue += run / float64(total)
			}

			acc.SongRevenue += run
			total, byArtist, start = 0, 0, unset
		}
	}
}

// settleAds closes a run only when an ad break appears with at least one
// free listen accumulated; the stretch after the final ad is never
// settled. An ad break over an empty run keeps the counters running.
func (e *RevenueEngine) settleAds(entries []*domain.LogEntry, acc *domain.ArtistAccount) {
	start := 0
	free, byArtist := 0, 0

	for i, entry := range entries {
		if !entry.Premium && !entry.IsAd() {
			free++
			if entry.Creator == acc.Username {
				byArtist++
			}
		}

		if entry.IsAd() && free != 0 {
			run := entry.Price * float64(byArtist) / float64(free)

			for j := start; j < i; j++ {
				ej := entries[j]
				if ej.Premium || ej.IsAd() || ej.Creator != acc.Username {
					continue
				}
				ej.Revenue += run / float64(free)
			}

			acc.SongRevenue += run
			start = i + 1
			free, byArtist = 0, 0
		}
	}
}

// mostProfitable aggregates settled revenue per song name in first-played
// order and returns the top earner. Ties go to the lexicographically
// smaller name; zero revenue reports the N/A sentinel.
func mostProfitable(logs []*domain.EventLog, artist string) string {
	type tally struct {
		name    string
		revenue float64
	}
	var songs []tally
	index := make(map[string]int)

	for _, log := range logs {
		for _, entry := range log.Entries() {
			if entry.IsAd() || entry.Creator != artist {
				continue
			}
			if at, ok := index[entry.Name]; ok {
				songs[at].revenue += entry.Revenue
				continue
			}
			index[entry.Name] = len(songs)
			songs = append(songs, tally{name: entry.Name, revenue: entry.Revenue})
		}
	}

	best := domain.NoProfitableTrack
	bestRevenue := 0.0
	for _, s := range songs {
		switch {
		case s.revenue > bestRevenue:
			best, bestRevenue = s.name, s.revenue
		case s.revenue == bestRevenue && bestRevenue != 0 && s.name < best:
			best = s.name
		}
	}
	return best
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
