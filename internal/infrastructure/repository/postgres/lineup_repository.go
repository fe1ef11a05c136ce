package postgres

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	qb "github.com/riskibarqy/club-lineup/internal/platform/querybuilder"
)

// LineupRepository keeps one row per match, club scope and side. A save
// only touches the rows of the halves the payload carries.
type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) SaveLineup(ctx context.Context, payload lineup.SavePayload) error {
	models := lineupInsertModelsFromPayload(payload)
	if len(models) == 0 {
		return fmt.Errorf("save lineup %s: payload carries no lineup", payload.MatchID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save lineup tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, model := range models {
		if err := upsertLineup(ctx, tx, model); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save lineup tx: %w", err)
	}
	return nil
}

func (r *LineupRepository) Get(ctx context.Context, matchID string, scope club.Scope, side lineup.Side) (lineup.Lineup, bool, error) {
	scope = scope.Normalize()
	query, args, err := lineupBaseSelectBuilder().
		Where(qb.Eq("match_id", strings.TrimSpace(matchID))).
		Where(scopeConditions(scope)...).
		Where(qb.Eq("side", string(side))).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isPoolerStatementError(err) {
			return r.getLiteral(ctx, matchID, scope, side)
		}
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	item, err := lineupFromRow(row)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return item, true, nil
}

func (r *LineupRepository) getLiteral(ctx context.Context, matchID string, scope club.Scope, side lineup.Side) (lineup.Lineup, bool, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(qb.EqLiteral("match_id", strings.TrimSpace(matchID))).
		Where(scopeLiteralConditions(scope)...).
		Where(qb.EqLiteral("side", string(side))).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup literal fallback query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup literal fallback: %w", err)
	}

	item, err := lineupFromRow(row)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return item, true, nil
}

func upsertLineup(ctx context.Context, tx *sqlx.Tx, model lineupInsertModel) error {
	query, args, err := qb.InsertModel("lineups", model).
		OnConflict(conflictTarget([]string{"match_id"}, "side")...).
		DoUpdateExcluded("formation_id", "slot_keys", "starter_emails", "substitute_emails").
		DoUpdateRaw("updated_at", "NOW()").
		Returning("updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lineup upsert query: %w", err)
	}

	var updatedAt time.Time
	if err := tx.GetContext(ctx, &updatedAt, query, args...); err != nil {
		return fmt.Errorf("upsert %s lineup for match %s: %w", model.Side, model.MatchID, err)
	}
	return nil
}

func lineupInsertModelsFromPayload(payload lineup.SavePayload) []lineupInsertModel {
	base := lineupInsertModel{
		MatchID:     strings.TrimSpace(payload.MatchID),
		ClubName:    strings.TrimSpace(payload.ClubName),
		AgeGroup:    strings.TrimSpace(payload.AgeGroup),
		Division:    strings.TrimSpace(payload.Division),
		FormationID: payload.FormationID,
	}

	var out []lineupInsertModel
	if payload.HomeTeamLineup != nil {
		out = append(out, lineupHalf(base, lineup.SideHome, payload.HomeTeamLineup, payload.HomeSubstitutes))
	}
	if payload.AwayTeamLineup != nil {
		out = append(out, lineupHalf(base, lineup.SideAway, payload.AwayTeamLineup, payload.AwaySubstitutes))
	}
	return out
}

func lineupHalf(base lineupInsertModel, side lineup.Side, bySlot map[string]string, substitutes []string) lineupInsertModel {
	keys := make([]string, 0, len(bySlot))
	for key := range bySlot {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	emails := make([]string, 0, len(keys))
	for _, key := range keys {
		emails = append(emails, bySlot[key])
	}

	base.Side = string(side)
	base.SlotKeys = pq.StringArray(keys)
	base.StarterEmails = pq.StringArray(emails)
	base.SubstituteEmails = pq.StringArray(append([]string{}, substitutes...))
	return base
}

func lineupFromRow(row lineupTableModel) (lineup.Lineup, error) {
	if len(row.SlotKeys) != len(row.StarterEmails) {
		return lineup.Lineup{}, fmt.Errorf("lineup %d has %d slots but %d starters", row.ID, len(row.SlotKeys), len(row.StarterEmails))
	}

	assignments := make(map[formation.SlotKey]string, len(row.SlotKeys))
	for i, raw := range row.SlotKeys {
		slot, err := formation.ParseSlotKey(raw)
		if err != nil {
			return lineup.Lineup{}, fmt.Errorf("lineup %d: %w", row.ID, err)
		}
		assignments[slot] = row.StarterEmails[i]
	}

	return lineup.Lineup{
		MatchID: row.MatchID,
		Scope: club.Scope{
			ClubName: row.ClubName,
			AgeGroup: row.AgeGroup,
			Division: row.Division,
		},
		FormationID: row.FormationID,
		Side:        lineup.Side(row.Side),
		Assignments: assignments,
		Substitutes: append([]string(nil), row.SubstituteEmails...),
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func lineupBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("lineups")
}
