// Package producer publica eventos do ciclo de vida das apostas no Kafka.
// O broker é opcional no demo: sem brokers configurados usa-se o Noop.
package producer

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/radieske/agent-sportsbook-poc/internal/shared/kafka"
	"github.com/radieske/agent-sportsbook-poc/pkg/contracts/events"
)

// Publisher emite os eventos de ciclo de vida de uma aposta.
type Publisher interface {
	BetPlaced(ctx context.Context, e events.BetPlaced) error
	BetResolved(ctx context.Context, e events.BetResolved) error
	BetPaid(ctx context.Context, e events.BetPaid) error
}

// KafkaPublisher publica um tópico por tipo de evento.
type KafkaPublisher struct {
	placed   *kafkago.Writer
	resolved *kafkago.Writer
	paid     *kafkago.Writer
}

// NewKafkaPublisher cria os writers para os três tópicos de aposta.
func NewKafkaPublisher(brokers, topicPlaced, topicResolved, topicPaid string) *KafkaPublisher {
	return &KafkaPublisher{
		placed:   kafka.NewWriter(brokers, topicPlaced),
		resolved: kafka.NewWriter(brokers, topicResolved),
		paid:     kafka.NewWriter(brokers, topicPaid),
	}
}

func (p *KafkaPublisher) BetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.placed, e.BetID, b)
}

func (p *KafkaPublisher) BetResolved(ctx context.Context, e events.BetResolved) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.resolved, e.BetID, b)
}

func (p *KafkaPublisher) BetPaid(ctx context.Context, e events.BetPaid) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.paid, e.BetID, b)
}

// Close encerra os writers.
func (p *KafkaPublisher) Close() error {
	_ = p.placed.Close()
	_ = p.resolved.Close()
	return p.paid.Close()
}

// Noop descarta eventos; usado quando não há broker configurado.
type Noop struct{}

func (Noop) BetPlaced(context.Context, events.BetPlaced) error     { return nil }
func (Noop) BetResolved(context.Context, events.BetResolved) error { return nil }
func (Noop) BetPaid(context.Context, events.BetPaid) error         { return nil }
