package gateway

import (
	"context"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
	"github.com/valyala/fasthttp"
)

// LineupRepository stores lineups on the match resource of the remote service.
type LineupRepository struct {
	client *Client
}

func NewLineupRepository(client *Client) *LineupRepository {
	return &LineupRepository{client: client}
}

func (r *LineupRepository) SaveLineup(ctx context.Context, payload lineup.SavePayload) error {
	_, err := r.client.do(ctx, request{
		method: fasthttp.MethodPut,
		path:   "/matches/" + url.PathEscape(strings.TrimSpace(payload.MatchID)) + "/lineup",
		body:   payload,
	})
	if err != nil {
		return crerr.Wrapf(err, "save lineup match_id=%s", payload.MatchID)
	}
	return nil
}

func (r *LineupRepository) Get(ctx context.Context, matchID string, scope club.Scope, side lineup.Side) (lineup.Lineup, bool, error) {
	scope = scope.Normalize()
	query := url.Values{}
	query.Set("clubName", scope.ClubName)
	query.Set("ageGroup", scope.AgeGroup)
	query.Set("division", scope.Division)

	var payload lineup.SavePayload
	err := r.client.get(ctx, "/matches/"+url.PathEscape(strings.TrimSpace(matchID))+"/lineup", query, &payload)
	if err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, crerr.Wrapf(err, "get lineup match_id=%s", matchID)
	}

	half := payload.HomeTeamLineup
	if side == lineup.SideAway {
		half = payload.AwayTeamLineup
	}
	if half == nil {
		return lineup.Lineup{}, false, nil
	}

	item, err := lineup.FromPayload(payload, side)
	if err != nil {
		return lineup.Lineup{}, false, crerr.Wrap(err, "decode stored lineup")
	}
	return item, true, nil
}

// MatchEventRepository keeps the ledger on the remote service. The version
// token travels as an If-Match header; the service answers 412 when it moved.
type MatchEventRepository struct {
	client *Client
}

func NewMatchEventRepository(client *Client) *MatchEventRepository {
	return &MatchEventRepository{client: client}
}

func (r *MatchEventRepository) Get(ctx context.Context, matchID string) (matchevent.Ledger, error) {
	matchID = strings.TrimSpace(matchID)
	ledger := matchevent.Ledger{MatchID: matchID}

	var dto ledgerDTO
	if err := r.client.get(ctx, eventsPath(matchID), nil, &dto); err != nil {
		if isNotFound(err) {
			return ledger, nil
		}
		return matchevent.Ledger{}, crerr.Wrapf(err, "get match events match_id=%s", matchID)
	}

	ledger.Version = dto.Version
	ledger.Events = make([]matchevent.Event, 0, len(dto.Events))
	for _, e := range dto.Events {
		ledger.Events = append(ledger.Events, eventFromDTO(e))
	}
	return ledger, nil
}

func (r *MatchEventRepository) Replace(ctx context.Context, matchID string, events []matchevent.Event, expectedVersion int64) (int64, error) {
	matchID = strings.TrimSpace(matchID)
	body := replaceEventsRequest{Events: make([]eventDTO, 0, len(events))}
	for _, e := range events {
		body.Events = append(body.Events, eventToDTO(e))
	}

	resp, err := r.client.do(ctx, request{
		method:  fasthttp.MethodPut,
		path:    eventsPath(matchID),
		body:    body,
		headers: versionHeader(expectedVersion),
	})
	if err != nil {
		if isPreconditionFailed(err) {
			return 0, matchevent.ErrVersionConflict
		}
		return 0, crerr.Wrapf(err, "replace match events match_id=%s", matchID)
	}

	var out replaceEventsResponse
	if len(resp.body) > 0 {
		if err := decode(resp.body, &out); err != nil {
			return 0, crerr.Wrap(err, "decode replace match events response")
		}
	}
	// Services without versioning answer with an empty body.
	return out.Version, nil
}

func eventsPath(matchID string) string {
	return "/matches/" + url.PathEscape(matchID) + "/events"
}

type PlayerStatsRepository struct {
	client *Client
}

func NewPlayerStatsRepository(client *Client) *PlayerStatsRepository {
	return &PlayerStatsRepository{client: client}
}

// Increment is sent once: a retried POST could count the same stat twice.
// Failed players are retried by the caller.
func (r *PlayerStatsRepository) Increment(ctx context.Context, inc playerstats.Increment) error {
	scope := inc.Scope.Normalize()
	_, err := r.client.do(ctx, request{
		method:  fasthttp.MethodPost,
		path:    "/player-stats/increments",
		noRetry: true,
		body: statIncrementRequest{
			ClubName:    scope.ClubName,
			AgeGroup:    scope.AgeGroup,
			Division:    scope.Division,
			PlayerEmail: player.NormalizeEmail(inc.PlayerEmail),
			PlayerName:  strings.TrimSpace(inc.PlayerName),
			StatKey:     string(inc.StatKey),
			IsHomeGame:  inc.IsHomeGame,
		},
	})
	if err != nil {
		return crerr.Wrapf(err, "increment %s for %s", inc.StatKey, inc.PlayerEmail)
	}
	return nil
}

type PlayerRepository struct {
	client *Client
}

func NewPlayerRepository(client *Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func (r *PlayerRepository) ListByScope(ctx context.Context, scope club.Scope) ([]player.Player, error) {
	scope = scope.Normalize()
	query := url.Values{}
	query.Set("ageGroup", scope.AgeGroup)
	query.Set("division", scope.Division)

	var resp rosterResponse
	if err := r.client.get(ctx, "/clubs/"+url.PathEscape(scope.ClubName)+"/players", query, &resp); err != nil {
		if isNotFound(err) {
			return []player.Player{}, nil
		}
		return nil, crerr.Wrapf(err, "list roster club=%s", scope.ClubName)
	}

	out := make([]player.Player, 0, len(resp.Players))
	for _, p := range resp.Players {
		out = append(out, playerFromDTO(p, scope))
	}
	return out, nil
}
