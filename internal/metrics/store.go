package metrics

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

var _ Tallies = (*store)(nil)

// NewTallies creates a Tallies store on the metrics table.
func NewTallies(db *sql.DB) Tallies {
	return &store{
		db: db,
	}
}

// Increment upserts a tally key and increments its value by one.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment tally", "error", err, "key", key)
		return
	}
	log.Debug("Incremented tally", "key", key)
}

// GetAll returns all tallies from the database.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tallies := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		tallies[key] = value
	}
	return tallies, rows.Err()
}
