package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
	"github.com/riskibarqy/club-lineup/internal/infrastructure/repository/memory"
	playerstatsmock "github.com/riskibarqy/club-lineup/internal/mocks/domain/playerstats"
	"github.com/stretchr/testify/mock"
)

func testLineup(t *testing.T, starters ...string) lineup.Lineup {
	t.Helper()

	slots := formation.Default().Slots("4-4-2")
	assignments := make(map[formation.SlotKey]string, len(starters))
	for i, email := range starters {
		assignments[slots[i]] = email
	}
	return lineup.Lineup{
		MatchID:     "m-1",
		Scope:       memory.SeedScope,
		FormationID: "4-4-2",
		Side:        lineup.SideHome,
		Assignments: assignments,
		Substitutes: []string{"bench@x.com"},
	}
}

func TestParticipationService_RecordParticipation_CreditsStartersOnly(t *testing.T) {
	stats := memory.NewPlayerStatsRepository()
	svc := NewParticipationService(stats, ParticipationConfig{MaxWorkers: 2}, nil)

	names := player.NewNameLookup([]player.Player{{Email: "a@x.com", Name: "Ana"}})
	report, err := svc.RecordParticipation(t.Context(), testLineup(t, "a@x.com", "b@x.com", "c@x.com"), false, names)
	if err != nil {
		t.Fatalf("record participation: %v", err)
	}
	if len(report.Results) != 3 || report.SucceededCount() != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Results[0].PlayerName != "Ana" || report.Results[1].PlayerName != "b@x.com" {
		t.Fatalf("unexpected name resolution: %+v", report.Results)
	}

	agg, ok := stats.Get(t.Context(), memory.SeedScope, "a@x.com")
	if !ok || agg.Away.GamesPlayed != 1 || agg.Home.GamesPlayed != 0 {
		t.Fatalf("expected one away game for a@x.com, got %+v", agg)
	}
	if _, ok := stats.Get(t.Context(), memory.SeedScope, "bench@x.com"); ok {
		t.Fatalf("substitutes must not be credited")
	}
}

func TestParticipationService_RecordParticipation_PartialFailure(t *testing.T) {
	stats := playerstatsmock.NewRepository(t)
	svc := NewParticipationService(stats, ParticipationConfig{MaxWorkers: 4}, nil)
	statErr := errors.New("stats service timeout")

	stats.On("Increment", mock.Anything, mock.MatchedBy(func(inc playerstats.Increment) bool {
		return inc.PlayerEmail == "b@x.com"
	})).Return(statErr).Once()
	stats.On("Increment", mock.Anything, mock.MatchedBy(func(inc playerstats.Increment) bool {
		return inc.PlayerEmail != "b@x.com" && inc.StatKey == playerstats.StatGamesPlayed && inc.IsHomeGame
	})).Return(nil).Twice()

	report, err := svc.RecordParticipation(t.Context(), testLineup(t, "a@x.com", "b@x.com", "c@x.com"), true, nil)
	if !errors.Is(err, ErrPartialFailure) {
		t.Fatalf("expected ErrPartialFailure, got %v", err)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].PlayerEmail != "b@x.com" || !errors.Is(failed[0].Err, statErr) {
		t.Fatalf("unexpected failed subset: %+v", failed)
	}
	if report.SucceededCount() != 2 {
		t.Fatalf("expected two succeeded updates, got %d", report.SucceededCount())
	}

	stats.On("Increment", mock.Anything, mock.MatchedBy(func(inc playerstats.Increment) bool {
		return inc.PlayerEmail == "b@x.com"
	})).Return(nil).Once()

	retry, err := svc.Retry(t.Context(), report.Scope, true, []ParticipationTarget{
		{PlayerEmail: failed[0].PlayerEmail, PlayerName: failed[0].PlayerName},
	})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(retry.Results) != 1 || !retry.Results[0].Succeeded() {
		t.Fatalf("unexpected retry report: %+v", retry)
	}
}

func TestParticipationService_Retry_RejectsEmptyEmail(t *testing.T) {
	svc := NewParticipationService(playerstatsmock.NewRepository(t), ParticipationConfig{}, nil)

	_, err := svc.Retry(t.Context(), memory.SeedScope, true, []ParticipationTarget{{PlayerEmail: " "}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParticipationService_RecordParticipation_RequiresScope(t *testing.T) {
	svc := NewParticipationService(playerstatsmock.NewRepository(t), ParticipationConfig{}, nil)
	lu := testLineup(t, "a@x.com")
	lu.Scope.ClubName = ""

	_, err := svc.RecordParticipation(t.Context(), lu, true, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
