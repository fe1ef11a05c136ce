package postgres

import "time"

type matchEventLedgerTableModel struct {
	MatchID   string    `db:"match_id"`
	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type matchEventTableModel struct {
	ID            string    `db:"id"`
	MatchID       string    `db:"match_id"`
	Position      int       `db:"position"`
	EventType     string    `db:"event_type"`
	PlayerEmail   string    `db:"player_email"`
	Minute        string    `db:"minute"`
	SubbedInEmail string    `db:"subbed_in_email"`
	RecordedAt    time.Time `db:"recorded_at"`
}
