package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
	qb "github.com/riskibarqy/club-lineup/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

var playerStatsCounterColumns = []string{
	"home_goals", "home_assists", "home_yellow_cards", "home_red_cards", "home_games_played",
	"away_goals", "away_assists", "away_yellow_cards", "away_red_cards", "away_games_played",
}

// Increment adds one to a single counter in one statement so concurrent
// increments for the same player never lose an update.
func (r *PlayerStatsRepository) Increment(ctx context.Context, inc playerstats.Increment) error {
	if err := inc.Validate(); err != nil {
		return err
	}

	query, args, err := playerStatsIncrementBuilder(playerStatsInsertModelFromIncrement(inc)).ToSQL()
	if err != nil {
		return fmt.Errorf("build player stats increment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment %s for %s: %w", inc.StatKey, inc.PlayerEmail, err)
	}
	return nil
}

func (r *PlayerStatsRepository) Get(ctx context.Context, scope club.Scope, email string) (playerstats.Aggregate, bool, error) {
	scope = scope.Normalize()
	query, args, err := qb.Select("*").From("player_stats").
		Where(scopeConditions(scope)...).
		Where(qb.Eq("player_email", player.NormalizeEmail(email))).
		ToSQL()
	if err != nil {
		return playerstats.Aggregate{}, false, fmt.Errorf("build get player stats query: %w", err)
	}

	var row playerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.Aggregate{}, false, nil
		}
		return playerstats.Aggregate{}, false, fmt.Errorf("get player stats: %w", err)
	}

	return playerstats.Aggregate{
		Scope:       club.Scope{ClubName: row.ClubName, AgeGroup: row.AgeGroup, Division: row.Division},
		PlayerEmail: row.PlayerEmail,
		PlayerName:  row.PlayerName,
		Home: playerstats.Split{
			Goals:       row.HomeGoals,
			Assists:     row.HomeAssists,
			YellowCards: row.HomeYellowCards,
			RedCards:    row.HomeRedCards,
			GamesPlayed: row.HomeGamesPlayed,
		},
		Away: playerstats.Split{
			Goals:       row.AwayGoals,
			Assists:     row.AwayAssists,
			YellowCards: row.AwayYellowCards,
			RedCards:    row.AwayRedCards,
			GamesPlayed: row.AwayGamesPlayed,
		},
	}, true, nil
}

func playerStatsInsertModelFromIncrement(inc playerstats.Increment) playerStatsInsertModel {
	scope := inc.Scope.Normalize()
	model := playerStatsInsertModel{
		ClubName:    scope.ClubName,
		AgeGroup:    scope.AgeGroup,
		Division:    scope.Division,
		PlayerEmail: player.NormalizeEmail(inc.PlayerEmail),
		PlayerName:  strings.TrimSpace(inc.PlayerName),
	}

	home := inc.IsHomeGame
	switch inc.StatKey {
	case playerstats.StatGoals:
		if home {
			model.HomeGoals = 1
		} else {
			model.AwayGoals = 1
		}
	case playerstats.StatAssists:
		if home {
			model.HomeAssists = 1
		} else {
			model.AwayAssists = 1
		}
	case playerstats.StatYellowCards:
		if home {
			model.HomeYellowCards = 1
		} else {
			model.AwayYellowCards = 1
		}
	case playerstats.StatRedCards:
		if home {
			model.HomeRedCards = 1
		} else {
			model.AwayRedCards = 1
		}
	case playerstats.StatGamesPlayed:
		if home {
			model.HomeGamesPlayed = 1
		} else {
			model.AwayGamesPlayed = 1
		}
	}
	return model
}

func playerStatsIncrementBuilder(model playerStatsInsertModel) *qb.InsertBuilder {
	return qb.InsertModel("player_stats", model).
		OnConflict(conflictTarget(nil, "player_email")...).
		DoUpdateExcluded("player_name").
		DoUpdateAdd(playerStatsCounterColumns...).
		DoUpdateRaw("updated_at", "NOW()")
}
