// Package sqlite provides a SQLite-backed implementation of the payout
// repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solara-labs/cadenza/internal/core/domain"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the payout repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// SaveReport replaces the stored payout report with the given one.
func (a *Adapter) SaveReport(ctx context.Context, payouts []domain.Payout) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payouts"); err != nil {
		return fmt.Errorf("failed to clear old report: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO payouts (username, merch_revenue, song_revenue, ranking, most_profitable_song)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range payouts {
		if _, err := stmt.ExecContext(
			ctx,
			p.Username,
			p.MerchRevenue,
			p.SongRevenue,
			p.Ranking,
			p.MostProfitableTrack,
		); err != nil {
			return fmt.Errorf("failed to save payout for %s: %w", p.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetReport loads the stored payout report in ranking order.
func (a *Adapter) GetReport(ctx context.Context) ([]domain.Payout, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT username, merch_revenue, song_revenue, ranking, most_profitable_song
		FROM payouts
		ORDER BY ranking ASC, username ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load payout report: %w", err)
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		var p domain.Payout
		if err := rows.Scan(
			&p.Username,
			&p.MerchRevenue,
			&p.SongRevenue,
			&p.Ranking,
			&p.MostProfitableTrack,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payouts: %w", err)
	}

	if len(payouts) == 0 {
		return nil, domain.ErrNotFound
	}
	return payouts, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS payouts (
		username TEXT PRIMARY KEY,
		merch_revenue REAL NOT NULL,
		song_revenue REAL NOT NULL,
		ranking INTEGER NOT NULL,
		most_profitable_song TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
