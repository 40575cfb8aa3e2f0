package domain

// Payout is one artist's line in the end-of-run monetization report:
// the final revenue totals rounded to cents, the computed ranking and the
// artist's highest-earning track.
type Payout struct {
	Username            string  `json:"username"`
	MerchRevenue        float64 `json:"merchRevenue"`
	SongRevenue         float64 `json:"songRevenue"`
	Ranking             int     `json:"ranking"`
	MostProfitableTrack string  `json:"mostProfitableSong"`
}
