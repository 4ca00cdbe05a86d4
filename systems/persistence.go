package systems

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/automoto/arenabot/components"
	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

const (
	matchIndexKey   = "matches"
	maxSavedMatches = 50
)

// PlayerSummary is one slot's line in a saved match.
type PlayerSummary struct {
	Slot             int                `json:"slot"`
	Name             string             `json:"name"`
	Personality      string             `json:"personality"`
	Kills            int                `json:"kills"`
	Deaths           int                `json:"deaths"`
	ShotsFired       int                `json:"shotsFired"`
	Hits             int                `json:"hits"`
	Accuracy         float64            `json:"accuracy"`
	Signatures       map[string]int     `json:"signatures"`
	SignaturesCut    int                `json:"signaturesCancelled"`
	Phrases          map[string]int     `json:"phrases"`
	MercyActivations int                `json:"mercyActivations"`
	Transitions      int                `json:"transitions"`
	StateShare       map[string]float64 `json:"stateShare"`
}

// MatchSummary is the telemetry record saved after each match.
type MatchSummary struct {
	ID       string          `json:"id"`
	Map      string          `json:"map"`
	Round    int             `json:"round"`
	Played   time.Duration   `json:"played"`
	Winner   int             `json:"winner"` // slot, -1 for a tie
	Players  []PlayerSummary `json:"players"`
	SavedAt  time.Time       `json:"savedAt"`
	Finished bool            `json:"finished"`
}

// Summarize collects the scoreboard and telemetry of the world's match.
func Summarize(e *ecs.ECS) MatchSummary {
	match, ok := matchData(e.World)
	if !ok {
		return MatchSummary{Winner: -1}
	}
	sum := MatchSummary{
		ID:       match.ID,
		Map:      match.Map,
		Round:    match.Round,
		Played:   match.Elapsed(),
		Winner:   match.GetLeader(),
		Finished: match.Over,
	}
	if sum.Winner < 0 {
		sum.Winner = -1
	}

	tele := telemetryData(e.World)
	for _, entry := range botsBySlot(e.World) {
		bot := components.Bot.Get(entry)
		score := match.GetPlayerScore(bot.Slot)
		p := PlayerSummary{
			Slot:        bot.Slot,
			Name:        bot.Name,
			Personality: bot.Personality,
			Kills:       score.Kills,
			Deaths:      score.Deaths,
			ShotsFired:  score.ShotsFired,
			Hits:        score.Hits,
			Accuracy:    score.Accuracy(),
			StateShare:  map[string]float64{},
		}
		if tele != nil {
			t := tele.Slot(bot.Slot)
			p.Signatures = t.Signatures
			p.SignaturesCut = t.SignaturesCut
			p.Phrases = t.Phrases
			p.MercyActivations = t.MercyActivations
			p.Transitions = t.Transitions
			var total time.Duration
			for _, d := range t.StateTime {
				total += d
			}
			for state, d := range t.StateTime {
				if total > 0 {
					p.StateShare[state] = float64(d) / float64(total)
				}
			}
		}
		sum.Players = append(sum.Players, p)
	}
	return sum
}

// TelemetryStore persists match summaries with gdata.
type TelemetryStore struct {
	m      *gdata.Manager
	logger *log.Logger
}

// OpenTelemetryStore opens (or creates) the app's data directory.
func OpenTelemetryStore(appName string, logger *log.Logger) (*TelemetryStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", appName, err)
	}
	return &TelemetryStore{m: m, logger: logger}, nil
}

// SaveMatch stores sum under "match-<id>" and appends it to the index,
// dropping the oldest entries beyond the retention limit.
func (s *TelemetryStore) SaveMatch(sum MatchSummary) error {
	if sum.SavedAt.IsZero() {
		sum.SavedAt = time.Now()
	}
	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("telemetry: encode match %s: %w", sum.ID, err)
	}
	if err := s.m.SaveItem(matchKey(sum.ID), data); err != nil {
		return fmt.Errorf("telemetry: save match %s: %w", sum.ID, err)
	}

	ids, err := s.ListMatches()
	if err != nil {
		s.logger.Warn("telemetry index unreadable, starting a new one", "err", err)
		ids = nil
	}
	ids = append(ids, sum.ID)
	for len(ids) > maxSavedMatches {
		if err := s.m.SaveItem(matchKey(ids[0]), nil); err != nil {
			s.logger.Warn("could not drop old match", "match", ids[0], "err", err)
		}
		ids = ids[1:]
	}
	index, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("telemetry: encode index: %w", err)
	}
	if err := s.m.SaveItem(matchIndexKey, index); err != nil {
		return fmt.Errorf("telemetry: save index: %w", err)
	}
	return nil
}

// LoadMatch returns a saved summary, nil when it does not exist.
func (s *TelemetryStore) LoadMatch(id string) (*MatchSummary, error) {
	data, err := s.m.LoadItem(matchKey(id))
	if err != nil {
		return nil, fmt.Errorf("telemetry: load match %s: %w", id, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var sum MatchSummary
	if err := json.Unmarshal(data, &sum); err != nil {
		return nil, fmt.Errorf("telemetry: parse match %s: %w", id, err)
	}
	return &sum, nil
}

// ListMatches returns the saved match ids, oldest first.
func (s *TelemetryStore) ListMatches() ([]string, error) {
	data, err := s.m.LoadItem(matchIndexKey)
	if err != nil {
		return nil, fmt.Errorf("telemetry: load index: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("telemetry: parse index: %w", err)
	}
	return ids, nil
}

// Totals aggregates kills per personality across every saved match.
func (s *TelemetryStore) Totals() (map[string]int, error) {
	ids, err := s.ListMatches()
	if err != nil {
		return nil, err
	}
	totals := map[string]int{}
	for _, id := range ids {
		sum, err := s.LoadMatch(id)
		if err != nil {
			s.logger.Warn("skipping unreadable match", "match", id, "err", err)
			continue
		}
		if sum == nil {
			continue
		}
		for _, p := range sum.Players {
			totals[p.Personality] += p.Kills
		}
	}
	return totals, nil
}

func matchKey(id string) string {
	return "match-" + id
}

// SortedStates returns the keys of a state share map in a stable order.
func SortedStates(share map[string]float64) []string {
	keys := make([]string, 0, len(share))
	for k := range share {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
