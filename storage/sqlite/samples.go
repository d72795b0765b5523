package sqlite

import (
	"database/sql"
	"time"

	"github.com/poundbot/gamewatch/types"
)

// Samples implements storage.SamplesStore
type Samples struct {
	db *sql.DB
}

// Append implements storage.SamplesStore.Append
func (s Samples) Append(id string, sample types.HistoricSample, cutoff time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO samples (id, at, players) VALUES (?, ?, ?)`,
		id, sample.At.UnixNano(), sample.Players,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`DELETE FROM samples WHERE id = ? AND at < ?`, id, cutoff.UnixNano()); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Read implements storage.SamplesStore.Read
func (s Samples) Read(id string, cutoff time.Time) ([]types.HistoricSample, error) {
	rows, err := s.db.Query(
		`SELECT at, players FROM samples WHERE id = ? AND at >= ? ORDER BY at`,
		id, cutoff.UnixNano(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	samples := []types.HistoricSample{}
	for rows.Next() {
		var (
			at      int64
			players int
		)
		if err := rows.Scan(&at, &players); err != nil {
			return nil, err
		}
		samples = append(samples, types.HistoricSample{At: time.Unix(0, at).UTC(), Players: players})
	}
	return samples, rows.Err()
}
