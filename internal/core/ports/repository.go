package ports

import (
	"context"

	"github.com/solara-labs/cadenza/internal/core/domain"
)

// PayoutRepository persists the end-of-run monetization report.
type PayoutRepository interface {
	SaveReport(ctx context.Context, payouts []domain.Payout) error
	GetReport(ctx context.Context) ([]domain.Payout, error)
}
