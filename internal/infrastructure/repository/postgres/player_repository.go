package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	qb "github.com/riskibarqy/club-lineup/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByScope(ctx context.Context, scope club.Scope) ([]player.Player, error) {
	scope = scope.Normalize()
	query, args, err := playerBaseSelectBuilder().
		Where(playerScopeConditions(scope)...).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by scope query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isPoolerStatementError(err) {
			return r.listByScopeLiteral(ctx, scope)
		}
		return nil, fmt.Errorf("list players by scope: %w", err)
	}

	return playersFromRows(rows), nil
}

// listByScopeLiteral inlines the scope so the query carries no parameters.
// Used when a transaction pooler drops the unnamed prepared statement.
func (r *PlayerRepository) listByScopeLiteral(ctx context.Context, scope club.Scope) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(scopeLiteralConditions(scope)...).
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players literal fallback query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players literal fallback: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}
	scope := item.Scope.Normalize()
	insertModel := playerInsertModel{
		ClubName: scope.ClubName,
		AgeGroup: scope.AgeGroup,
		Division: scope.Division,
		Email:    player.NormalizeEmail(item.Email),
		Name:     strings.TrimSpace(item.Name),
		Position: string(item.Position),
		UID:      nullString(item.UID),
	}

	query, args, err := qb.InsertModel("players", insertModel).
		OnConflict(conflictTarget(nil, "email")...).
		ConflictWhere("deleted_at IS NULL").
		DoUpdateExcluded("name", "position", "uid").
		DoUpdateRaw("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build player upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player %s: %w", insertModel.Email, err)
	}
	return nil
}

func playerScopeConditions(scope club.Scope) []qb.Condition {
	return append(scopeConditions(scope), qb.IsNull("deleted_at"))
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			Email:    row.Email,
			Name:     row.Name,
			Position: player.Position(row.Position),
			UID:      row.UID.String,
			Scope: club.Scope{
				ClubName: row.ClubName,
				AgeGroup: row.AgeGroup,
				Division: row.Division,
			},
		})
	}
	return out
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("players")
}
