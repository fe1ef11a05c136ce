package postgres

import (
	"time"

	"github.com/lib/pq"
)

// Starters are stored as two parallel arrays: slot keys and the email bound
// to each slot.
type lineupTableModel struct {
	ID               int64          `db:"id"`
	MatchID          string         `db:"match_id"`
	ClubName         string         `db:"club_name"`
	AgeGroup         string         `db:"age_group"`
	Division         string         `db:"division"`
	Side             string         `db:"side"`
	FormationID      string         `db:"formation_id"`
	SlotKeys         pq.StringArray `db:"slot_keys"`
	StarterEmails    pq.StringArray `db:"starter_emails"`
	SubstituteEmails pq.StringArray `db:"substitute_emails"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type lineupInsertModel struct {
	MatchID          string         `db:"match_id"`
	ClubName         string         `db:"club_name"`
	AgeGroup         string         `db:"age_group"`
	Division         string         `db:"division"`
	Side             string         `db:"side"`
	FormationID      string         `db:"formation_id"`
	SlotKeys         pq.StringArray `db:"slot_keys"`
	StarterEmails    pq.StringArray `db:"starter_emails"`
	SubstituteEmails pq.StringArray `db:"substitute_emails"`
}
