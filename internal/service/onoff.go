package service

import (
	"context"
	"fmt"

	"github.com/hoopsight/courtlog/internal/cooe"
	"github.com/hoopsight/courtlog/internal/store"
	"github.com/hoopsight/courtlog/internal/store/repository"
)

// OnOffService computes season on/off efficiency from stored game
// possessions.
type OnOffService struct {
	games       *repository.GameRepository
	rosters     *repository.RosterRepository
	possessions *repository.PossessionRepository
}

// NewOnOffService creates an on/off service.
func NewOnOffService(db *store.Database) *OnOffService {
	return &OnOffService{
		games:       repository.NewGameRepository(db),
		rosters:     repository.NewRosterRepository(db),
		possessions: repository.NewPossessionRepository(db),
	}
}

// PlayerSeason computes a player's on/off numbers across every game in a
// season. Numerators and denominators sum across games before dividing, so
// a short game never weighs as much as a full one.
func (s *OnOffService) PlayerSeason(ctx context.Context, seasonID int64, playerName string) (*cooe.Stats, error) {
	roster, err := s.rosters.GetBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	player, ok := roster[playerName]
	if !ok {
		return nil, fmt.Errorf("player not on roster: %s", playerName)
	}

	games, err := s.games.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	gameIDs := make([]int64, 0, len(games))
	for _, g := range games {
		gameIDs = append(gameIDs, g.GameID)
	}

	stats, err := cooe.PlayerOnOff(ctx, s.possessions, gameIDs, player.RosterID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, fmt.Errorf("no games recorded for season %d", seasonID)
	}
	return stats, nil
}
