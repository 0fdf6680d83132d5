package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/hoopsight/courtlog/internal/cache"
	"github.com/hoopsight/courtlog/internal/ingest/sportscode"
	"github.com/hoopsight/courtlog/internal/store"
	"github.com/hoopsight/courtlog/internal/store/repository"
)

const leaderboardTTL = 12 * time.Hour

// LeaderboardService aggregates season-long player totals. Results are
// cached in Redis per season and invalidated on every parse.
type LeaderboardService struct {
	stats *repository.StatsRepository
	cache *cache.RedisCache
}

// NewLeaderboardService creates a leaderboard service. Cache may be nil.
func NewLeaderboardService(db *store.Database, rc *cache.RedisCache) *LeaderboardService {
	return &LeaderboardService{
		stats: repository.NewStatsRepository(db),
		cache: rc,
	}
}

// LeaderboardEntry is one player's season totals with derived rates.
type LeaderboardEntry struct {
	PlayerName string `json:"player_name"`
	Appearances int   `json:"appearances"`

	Points        int `json:"points"`
	Assists       int `json:"assists"`
	PotAssists    int `json:"pot_assists"`
	SecondAssists int `json:"second_assists"`
	Turnovers     int `json:"turnovers"`

	ATRMakes    int `json:"atr_makes"`
	ATRAttempts int `json:"atr_attempts"`
	FG2Makes    int `json:"fg2_makes"`
	FG2Attempts int `json:"fg2_attempts"`
	FG3Makes    int `json:"fg3_makes"`
	FG3Attempts int `json:"fg3_attempts"`
	FTM         int `json:"ftm"`
	FTA         int `json:"fta"`

	EFGPct        *float64 `json:"efg_pct,omitempty"`
	AssistTORatio *float64 `json:"assist_to_ratio,omitempty"`
}

// Season returns the season leaderboard for games or practices, sorted by
// points.
func (s *LeaderboardService) Season(ctx context.Context, seasonID int64, fileType string) ([]*LeaderboardEntry, error) {
	key := cache.SeasonKey(seasonID, "leaderboard:"+fileType)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached []*LeaderboardEntry
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("Leaderboard cache read failed")
		}
	}

	lines, err := s.stats.ListBySeason(ctx, seasonID, fileType)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[string]*LeaderboardEntry)
	for _, line := range lines {
		e, ok := byPlayer[line.PlayerName]
		if !ok {
			e = &LeaderboardEntry{PlayerName: line.PlayerName}
			byPlayer[line.PlayerName] = e
		}
		e.Appearances++
		e.Points += line.Points
		e.Assists += line.Assists
		e.PotAssists += line.PotAssists
		e.SecondAssists += line.SecondAssists
		e.Turnovers += line.Turnovers
		e.ATRMakes += line.ATRMakes
		e.ATRAttempts += line.ATRAttempts
		e.FG2Makes += line.FG2Makes
		e.FG2Attempts += line.FG2Attempts
		e.FG3Makes += line.FG3Makes
		e.FG3Attempts += line.FG3Attempts
		e.FTM += line.FTM
		e.FTA += line.FTA
	}

	entries := make([]*LeaderboardEntry, 0, len(byPlayer))
	for _, e := range byPlayer {
		e.computeRates()
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	if s.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, key, data, leaderboardTTL); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Leaderboard cache write failed")
			}
		}
	}
	return entries, nil
}

func (e *LeaderboardEntry) computeRates() {
	fga := e.ATRAttempts + e.FG2Attempts + e.FG3Attempts
	if fga > 0 {
		v := float64(e.ATRMakes+e.FG2Makes+e.FG3Makes) + 0.5*float64(e.FG3Makes)
		v = v / float64(fga) * 100
		e.EFGPct = &v
	}
	if e.Turnovers > 0 {
		v := float64(e.Assists) / float64(e.Turnovers)
		e.AssistTORatio = &v
	}
}

// ShotSplit is a makes/attempts pair for one tagging label.
type ShotSplit struct {
	Makes    int `json:"makes"`
	Attempts int `json:"attempts"`
}

// ShotLabelSplits tallies every player's shooting split per tagging label
// (scheme tags, subcategory values, Assisted/Non-Assisted) from the stored
// shot detail records. fileType picks games or practices.
func (s *LeaderboardService) ShotLabelSplits(ctx context.Context, seasonID int64, fileType string) (map[string]map[string]*ShotSplit, error) {
	lines, err := s.stats.ListBySeason(ctx, seasonID, fileType)
	if err != nil {
		return nil, err
	}

	splits := make(map[string]map[string]*ShotSplit)
	for _, line := range lines {
		if !line.ShotTypeDetails.Valid {
			continue
		}
		var details []sportscode.ShotDetail
		if err := json.Unmarshal([]byte(line.ShotTypeDetails.String), &details); err != nil {
			return nil, fmt.Errorf("decoding shot details for %q: %w", line.PlayerName, err)
		}

		player := splits[line.PlayerName]
		if player == nil {
			player = make(map[string]*ShotSplit)
			splits[line.PlayerName] = player
		}
		for _, sd := range details {
			made := sd["result"] == "made"
			for label := range sportscode.GatherShotLabels(sd) {
				split := player[label]
				if split == nil {
					split = &ShotSplit{}
					player[label] = split
				}
				split.Attempts++
				if made {
					split.Makes++
				}
			}
		}
	}
	return splits, nil
}
