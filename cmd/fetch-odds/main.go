package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/shared/cache"
	"github.com/radieske/agent-sportsbook-poc/internal/shared/config"
	"github.com/radieske/agent-sportsbook-poc/internal/shared/logger"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/odds"
	"github.com/radieske/agent-sportsbook-poc/pkg/oddsmath"
)

const (
	oddsAPIBase = "https://api.the-odds-api.com/v4"
	fetchWindow = 7 * 24 * time.Hour
)

// Resposta da The Odds API (endpoint /sports/{sport}/odds, mercado h2h).
type apiEvent struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	CommenceTime time.Time      `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []apiBookmaker `json:"bookmakers"`
}

type apiBookmaker struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Markets []apiMarket `json:"markets"`
}

type apiMarket struct {
	Key      string       `json:"key"`
	Outcomes []apiOutcome `json:"outcomes"`
}

type apiOutcome struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func main() {
	cfg := config.Load()
	log, err := logger.New("fetch-odds", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.OddsAPIKey == "" {
		log.Fatal("ODDS_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events, remaining, err := fetchOdds(ctx, cfg.OddsAPIKey, cfg.Sport)
	if err != nil {
		log.Fatal("fetch odds", zap.Error(err))
	}

	games := formatGames(events, time.Now())
	log.Info("upcoming games",
		zap.String("sport", cfg.Sport),
		zap.Int("total", len(events)),
		zap.Int("within_window", len(games)),
	)

	for i, g := range games {
		log.Info("game",
			zap.Int("n", i+1),
			zap.String("matchup", g.Matchup()),
			zap.Time("commence", g.CommenceTime),
			zap.String("awayOdds", oddsmath.FormatAmerican(g.AwayOdds)),
			zap.String("homeOdds", oddsmath.FormatAmerican(g.HomeOdds)),
		)
	}

	out, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		log.Fatal("marshal games", zap.Error(err))
	}
	if err := os.WriteFile(cfg.OddsFile, out, 0o644); err != nil {
		log.Fatal("write odds file", zap.Error(err))
	}
	log.Info("odds saved", zap.String("file", cfg.OddsFile))

	// Snapshot opcional em Redis, para o serviço carregar sem o arquivo local
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis connect", zap.Error(err))
		}
		defer rdb.Close()

		if err := rdb.Set(ctx, odds.RedisKey, out, 0).Err(); err != nil {
			log.Fatal("redis set", zap.Error(err))
		}
		log.Info("odds snapshot published", zap.String("key", odds.RedisKey))
	}

	if remaining != "" {
		log.Info("api quota", zap.String("requests_remaining", remaining))
	}
}

// fetchOdds busca as odds moneyline (h2h) em formato americano, região US.
func fetchOdds(ctx context.Context, apiKey, sport string) ([]apiEvent, string, error) {
	params := url.Values{}
	params.Set("apiKey", apiKey)
	params.Set("regions", "us")
	params.Set("markets", "h2h")
	params.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/odds/?%s", oddsAPIBase, sport, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("api request failed: %d %s", resp.StatusCode, string(body))
	}

	var events []apiEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, "", fmt.Errorf("parse response: %w", err)
	}

	return events, resp.Header.Get("x-requests-remaining"), nil
}

// formatGames filtra partidas que começam nos próximos sete dias e extrai as
// odds do primeiro bookmaker (os valores costumam ser próximos entre casas).
// Outcome ausente vira odd 0.
func formatGames(events []apiEvent, now time.Time) []model.Game {
	cutoff := now.Add(fetchWindow)

	games := make([]model.Game, 0, len(events))
	for _, ev := range events {
		if ev.CommenceTime.Before(now) || ev.CommenceTime.After(cutoff) {
			continue
		}

		var homeOdds, awayOdds int
		if len(ev.Bookmakers) > 0 {
			for _, m := range ev.Bookmakers[0].Markets {
				if m.Key != "h2h" {
					continue
				}
				for _, o := range m.Outcomes {
					switch o.Name {
					case ev.HomeTeam:
						homeOdds = o.Price
					case ev.AwayTeam:
						awayOdds = o.Price
					}
				}
			}
		}

		games = append(games, model.Game{
			ID:           ev.ID,
			HomeTeam:     ev.HomeTeam,
			AwayTeam:     ev.AwayTeam,
			CommenceTime: ev.CommenceTime,
			HomeOdds:     homeOdds,
			AwayOdds:     awayOdds,
		})
	}

	return games
}
