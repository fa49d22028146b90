// Package odds carrega e indexa a lista de partidas de referência (odds.json
// gerado pelo cmd/fetch-odds, ou snapshot equivalente no Redis).
package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
)

// RedisKey é a chave onde o cmd/fetch-odds publica o snapshot do board.
const RedisKey = "odds:board"

// Board é a lista imutável de partidas da sessão, indexada por matchup.
type Board struct {
	games     []model.Game
	byMatchup map[string]model.Game
}

// NewBoard monta o board a partir da lista ordenada de partidas.
func NewBoard(games []model.Game) *Board {
	idx := make(map[string]model.Game, len(games))
	for _, g := range games {
		idx[g.Matchup()] = g
	}
	return &Board{games: games, byMatchup: idx}
}

// LoadFile lê o board de um arquivo JSON no formato produzido pelo fetch-odds.
func LoadFile(path string) (*Board, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read odds file: %w", err)
	}
	return Parse(b)
}

// Parse desserializa a lista de partidas.
func Parse(data []byte) (*Board, error) {
	var games []model.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("parse odds: %w", err)
	}
	return NewBoard(games), nil
}

// LoadRedis lê o snapshot do board publicado no Redis.
// Retorna (nil, nil) quando a chave não existe.
func LoadRedis(ctx context.Context, rdb *redis.Client, key string) (*Board, error) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return Parse(b)
}

// Games retorna a lista de partidas na ordem de carga.
func (b *Board) Games() []model.Game {
	return b.games
}

// Find busca a partida pelo matchup canônico "<away> @ <home>".
func (b *Board) Find(matchup string) (model.Game, bool) {
	g, ok := b.byMatchup[matchup]
	return g, ok
}
