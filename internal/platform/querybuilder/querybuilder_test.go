package querybuilder

import (
	"strings"
	"testing"
)

func TestSelect_FoldedScope(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(EqFold("club_name", "Riverside FC"), EqFold("age_group", "U12"), IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE lower(club_name) = lower($1) AND lower(age_group) = lower($2) AND deleted_at IS NULL ORDER BY name, id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Riverside FC" || args[1] != "U12" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelect_LiteralFallback(t *testing.T) {
	query, args, err := Select("*").
		From("lineups").
		Where(EqLiteral("side", "home"), EqFoldLiteral("club_name", "St. Mary's")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM lineups WHERE side = 'home' AND lower(club_name) = 'st. mary''s'"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %+v", args)
	}
}

func TestSelect_RequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("players").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsert_MultiRowReturning(t *testing.T) {
	query, args, err := InsertInto("match_events").
		Columns("id", "minute").
		Values("ev-1", "10").
		Values("ev-2", "45+2").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO match_events (id, minute) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "ev-1" || args[3] != "45+2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsert_RejectsShortRow(t *testing.T) {
	_, _, err := InsertInto("match_events").Columns("id", "minute").Values("ev-1").ToSQL()
	if err == nil {
		t.Fatalf("expected error for row with missing values")
	}
}

func TestInsertModel_ConflictDoNothing(t *testing.T) {
	type model struct {
		MatchID string `db:"match_id"`
		Version int64  `db:"version"`
		Skipped string `db:"-"`
		NoTag   string
	}

	query, args, err := InsertModel("match_event_ledgers", model{MatchID: "m-1", Version: 1}).
		OnConflict("match_id").
		DoNothing().
		Returning("version").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO match_event_ledgers (match_id, version) VALUES ($1, $2) ON CONFLICT (match_id) DO NOTHING RETURNING version"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "m-1" || args[1] != int64(1) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("t", 42).ToSQL(); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestInsert_DoUpdateOnPartialIndex(t *testing.T) {
	query, _, err := InsertInto("players").
		Columns("club_name", "email", "name").
		Values("Riverside FC", "a@x.com", "Ana").
		OnConflict("(lower(club_name))", "email").
		ConflictWhere("deleted_at IS NULL").
		DoUpdateExcluded("name").
		DoUpdateRaw("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO players (club_name, email, name) VALUES ($1, $2, $3) ON CONFLICT ((lower(club_name)), email) WHERE deleted_at IS NULL DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsert_DoUpdateAddCounters(t *testing.T) {
	query, _, err := InsertInto("player_stats").
		Columns("player_email", "home_goals", "away_goals").
		Values("a@x.com", 1, 0).
		OnConflict("player_email").
		DoUpdateAdd("home_goals", "away_goals").
		ToSQL()
	if err != nil {
		t.Fatalf("build increment query: %v", err)
	}

	wantSuffix := "DO UPDATE SET home_goals = player_stats.home_goals + EXCLUDED.home_goals, away_goals = player_stats.away_goals + EXCLUDED.away_goals"
	if !strings.HasSuffix(query, wantSuffix) {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsert_ConflictMisuse(t *testing.T) {
	base := func() *InsertBuilder {
		return InsertInto("players").Columns("email").Values("a@x.com")
	}
	if _, _, err := base().OnConflict("email").ToSQL(); err == nil {
		t.Fatalf("expected error for conflict target without action")
	}
	if _, _, err := base().DoUpdateExcluded("email").ToSQL(); err == nil {
		t.Fatalf("expected error for DO UPDATE without target")
	}
	if query, _, err := base().DoNothing().ToSQL(); err != nil || !strings.HasSuffix(query, "ON CONFLICT DO NOTHING") {
		t.Fatalf("expected targetless DO NOTHING, got %q err=%v", query, err)
	}
}

func TestUpdate_ExprAndReturning(t *testing.T) {
	query, args, err := Update("match_event_ledgers").
		SetExpr("version", "version + ?", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("match_id", "m-1"), Eq("version", int64(3))).
		Returning("version").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE match_event_ledgers SET version = version + $1, updated_at = NOW() WHERE match_id = $2 AND version = $3 RETURNING version"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 1 || args[1] != "m-1" || args[2] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdate_Rejects(t *testing.T) {
	if _, _, err := Update("players").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected unconditional update to be rejected")
	}
	_, _, err := Update("players").SetExpr("name", "? || ?", "a").Where(Eq("id", 1)).ToSQL()
	if err == nil || !strings.Contains(err.Error(), "placeholders") {
		t.Fatalf("expected placeholder mismatch error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	query, args, err := Delete("match_events").
		Where(Eq("match_id", "m-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	if query != "DELETE FROM match_events WHERE match_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "m-1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	_, _, err = Delete("match_events").ToSQL()
	if err == nil || !strings.Contains(err.Error(), "conditions") {
		t.Fatalf("expected unconditional delete to be rejected, got %v", err)
	}
}
