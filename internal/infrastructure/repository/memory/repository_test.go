package memory

import (
	"errors"
	"testing"

	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
)

func TestMatchEventRepository_ReplaceChecksVersion(t *testing.T) {
	repo := NewMatchEventRepository()
	ctx := t.Context()

	ledger, err := repo.Get(ctx, "m-1")
	if err != nil {
		t.Fatalf("get empty ledger: %v", err)
	}
	if ledger.Version != 0 || len(ledger.Events) != 0 {
		t.Fatalf("unexpected empty ledger: %+v", ledger)
	}

	events := []matchevent.Event{{Type: matchevent.TypeGoal, PlayerEmail: "a@x.com", Minute: "10"}}
	version, err := repo.Replace(ctx, "m-1", events, 0)
	if err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}

	if _, err := repo.Replace(ctx, "m-1", nil, 0); !errors.Is(err, matchevent.ErrVersionConflict) {
		t.Fatalf("expected version conflict for stale write, got %v", err)
	}

	ledger, _ = repo.Get(ctx, "m-1")
	if len(ledger.Events) != 1 || ledger.Version != 1 {
		t.Fatalf("stale write must not change the ledger: %+v", ledger)
	}
}

func TestLineupRepository_KeepsBothSides(t *testing.T) {
	repo := NewLineupRepository()
	ctx := t.Context()

	home := lineup.SavePayload{
		MatchID: "m-1", ClubName: SeedScope.ClubName, AgeGroup: SeedScope.AgeGroup, Division: SeedScope.Division,
		FormationID:     "4-4-2",
		HomeTeamLineup:  map[string]string{"GK-0-0": "noah.keeper@riverside.test"},
		HomeSubstitutes: []string{"leo.gloves@riverside.test"},
	}
	away := lineup.SavePayload{
		MatchID: "m-1", ClubName: SeedScope.ClubName, AgeGroup: SeedScope.AgeGroup, Division: SeedScope.Division,
		AwayTeamLineup: map[string]string{"GK-0-0": "other@riverside.test"},
	}

	if err := repo.SaveLineup(ctx, home); err != nil {
		t.Fatalf("save home: %v", err)
	}
	if _, exists, _ := repo.Get(ctx, "m-1", SeedScope, lineup.SideAway); exists {
		t.Fatalf("away side must not exist yet")
	}
	if err := repo.SaveLineup(ctx, away); err != nil {
		t.Fatalf("save away: %v", err)
	}

	got, exists, err := repo.Get(ctx, "m-1", SeedScope, lineup.SideHome)
	if err != nil || !exists {
		t.Fatalf("get home lineup: exists=%v err=%v", exists, err)
	}
	if got.FormationID != "4-4-2" || len(got.Assignments) != 1 || len(got.Substitutes) != 1 {
		t.Fatalf("home lineup overwritten by away save: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("expected updated at to be set")
	}
}

func TestPlayerStatsRepository_Increment(t *testing.T) {
	repo := NewPlayerStatsRepository()
	ctx := t.Context()
	inc := playerstats.Increment{
		Scope:       SeedScope,
		PlayerEmail: "Mason.Hill@riverside.test",
		PlayerName:  "Mason Hill",
		StatKey:     playerstats.StatGamesPlayed,
		IsHomeGame:  true,
	}

	for i := 0; i < 2; i++ {
		if err := repo.Increment(ctx, inc); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	agg, ok := repo.Get(ctx, SeedScope, "mason.hill@riverside.test")
	if !ok {
		t.Fatalf("expected aggregate to exist")
	}
	if agg.Home.GamesPlayed != 2 || agg.Away.GamesPlayed != 0 {
		t.Fatalf("unexpected split: %+v", agg)
	}
}

func TestPlayerRepository_ListByScope(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())

	got, err := repo.ListByScope(t.Context(), SeedScope)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(SeedPlayers()) {
		t.Fatalf("unexpected roster size: %d", len(got))
	}

	other := SeedScope
	other.AgeGroup = "U14"
	got, _ = repo.ListByScope(t.Context(), other)
	if len(got) != 0 {
		t.Fatalf("expected empty roster for other scope, got %d", len(got))
	}
}
