package domain

// NoProfitableTrack is reported when none of an artist's recorded tracks
// earned positive revenue.
const NoProfitableTrack = "N/A"

// ArtistAccount carries a creator's financial state. Listens and
// SongRevenue are mutated by play recording and the revenue engine;
// Ranking and MostProfitableTrack only by the engine's end-of-run pass.
type ArtistAccount struct {
	Username            string
	SongRevenue         float64
	MerchRevenue        float64
	Ranking             int
	MostProfitableTrack string
	Listens             int
}

// NewArtistAccount creates an account in its initial state.
func NewArtistAccount(username string) *ArtistAccount {
	return &ArtistAccount{
		Username:            username,
		Ranking:             1,
		MostProfitableTrack: NoProfitableTrack,
	}
}

// TotalRevenue is the sum of song and merch revenue.
func (a *ArtistAccount) TotalRevenue() float64 {
	return a.SongRevenue + a.MerchRevenue
}

// Active reports whether the artist qualifies for the end-of-run ranking.
func (a *ArtistAccount) Active() bool {
	return a.Listens > 0 || a.TotalRevenue() > 0
}
