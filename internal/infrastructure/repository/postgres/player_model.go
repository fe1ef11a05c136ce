package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	ClubName  string         `db:"club_name"`
	AgeGroup  string         `db:"age_group"`
	Division  string         `db:"division"`
	Email     string         `db:"email"`
	Name      string         `db:"name"`
	Position  string         `db:"position"`
	UID       sql.NullString `db:"uid"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	ClubName string         `db:"club_name"`
	AgeGroup string         `db:"age_group"`
	Division string         `db:"division"`
	Email    string         `db:"email"`
	Name     string         `db:"name"`
	Position string         `db:"position"`
	UID      sql.NullString `db:"uid"`
}
