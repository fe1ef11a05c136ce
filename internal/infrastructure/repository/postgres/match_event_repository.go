package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	qb "github.com/riskibarqy/club-lineup/internal/platform/querybuilder"
)

// MatchEventRepository stores one ledger row per match carrying the
// version token, plus the ordered events of that match.
type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) Get(ctx context.Context, matchID string) (matchevent.Ledger, error) {
	matchID = strings.TrimSpace(matchID)
	ledger := matchevent.Ledger{MatchID: matchID}

	query, args, err := qb.Select("*").From("match_event_ledgers").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return matchevent.Ledger{}, fmt.Errorf("build get match event ledger query: %w", err)
	}

	var head matchEventLedgerTableModel
	if err := r.db.GetContext(ctx, &head, query, args...); err != nil {
		if isNotFound(err) {
			return ledger, nil
		}
		return matchevent.Ledger{}, fmt.Errorf("get match event ledger: %w", err)
	}
	ledger.Version = head.Version

	query, args, err = qb.Select("*").From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return matchevent.Ledger{}, fmt.Errorf("build list match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return matchevent.Ledger{}, fmt.Errorf("list match events: %w", err)
	}

	ledger.Events = make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		ledger.Events = append(ledger.Events, matchEventFromRow(row))
	}
	return ledger, nil
}

// Replace swaps the full event list of a match when the stored version still
// equals expectedVersion. Version 0 means the ledger does not exist yet.
func (r *MatchEventRepository) Replace(ctx context.Context, matchID string, events []matchevent.Event, expectedVersion int64) (int64, error) {
	matchID = strings.TrimSpace(matchID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace match events tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	version, err := advanceLedgerVersion(ctx, tx, matchID, expectedVersion)
	if err != nil {
		return 0, err
	}

	query, args, err := qb.Delete("match_events").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("delete match events: %w", err)
	}

	if len(events) > 0 {
		insert := qb.InsertInto("match_events").Columns(
			"id", "match_id", "position", "event_type", "player_email", "minute", "subbed_in_email", "recorded_at",
		)
		for i, e := range events {
			insert.Values(e.ID, matchID, i, string(e.Type), e.PlayerEmail, e.Minute, e.SubbedInEmail, e.RecordedAt.UTC())
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build insert match events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert match events: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace match events tx: %w", err)
	}
	return version, nil
}

func advanceLedgerVersion(ctx context.Context, tx *sqlx.Tx, matchID string, expectedVersion int64) (int64, error) {
	var version int64
	if expectedVersion == 0 {
		query, args, err := qb.InsertInto("match_event_ledgers").
			Columns("match_id", "version").
			Values(matchID, 1).
			OnConflict("match_id").
			DoNothing().
			Returning("version").
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build create match event ledger query: %w", err)
		}
		if err := tx.GetContext(ctx, &version, query, args...); err != nil {
			if isNotFound(err) || isUniqueViolation(err) {
				return 0, matchevent.ErrVersionConflict
			}
			return 0, fmt.Errorf("create match event ledger: %w", err)
		}
		return version, nil
	}

	query, args, err := qb.Update("match_event_ledgers").
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("version", expectedVersion),
		).
		Returning("version").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build advance match event ledger query: %w", err)
	}
	if err := tx.GetContext(ctx, &version, query, args...); err != nil {
		if isNotFound(err) {
			return 0, matchevent.ErrVersionConflict
		}
		return 0, fmt.Errorf("advance match event ledger: %w", err)
	}
	return version, nil
}

func matchEventFromRow(row matchEventTableModel) matchevent.Event {
	return matchevent.Event{
		ID:            row.ID,
		Type:          matchevent.Type(row.EventType),
		PlayerEmail:   row.PlayerEmail,
		Minute:        row.Minute,
		SubbedInEmail: row.SubbedInEmail,
		RecordedAt:    row.RecordedAt,
	}
}
