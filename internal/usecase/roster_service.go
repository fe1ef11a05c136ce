package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

// RosterService reads the club roster. The roster is read-only here.
type RosterService struct {
	playerRepo player.Repository
}

func NewRosterService(playerRepo player.Repository) *RosterService {
	return &RosterService{playerRepo: playerRepo}
}

func (s *RosterService) List(ctx context.Context, scope club.Scope) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.List", scopeAttrs(scope)...)
	defer span.End()

	scope = scope.Normalize()
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	players, err := s.playerRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list roster by scope: %w", err)
	}
	return players, nil
}

// Available lists roster players not in assigned, in roster order.
func (s *RosterService) Available(ctx context.Context, scope club.Scope, assigned []string) ([]player.Player, error) {
	players, err := s.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return lineup.Available(players, assigned), nil
}

func (s *RosterService) NameLookup(ctx context.Context, scope club.Scope) (player.NameLookup, error) {
	players, err := s.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return player.NewNameLookup(players), nil
}
