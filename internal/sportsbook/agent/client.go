// Package agent fala com o gateway do agente conversacional (LLM + ferramenta
// de pagamento). Para o núcleo o agente é opaco: entra conversa, sai texto
// livre; a colocação da aposta e a transferência do payout acontecem do lado
// de lá.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
)

var txIDRe = regexp.MustCompile(`(?i)Transaction ID:\s*([a-zA-Z0-9-]+)`)

// Wallets são os endereços usados nos prompts de transferência.
type Wallets struct {
	Bettor     string
	Sportsbook string
}

// Message é um turno da conversa repassado ao agente.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	System   string    `json:"system"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Client é o cliente HTTP do gateway de agente.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Wallets Wallets

	log *zap.Logger
}

// New cria um cliente com timeout largo: a resposta inclui o turno do LLM e a
// transferência on-chain.
func New(baseURL string, wallets Wallets, log *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 90 * time.Second},
		Wallets: wallets,
		log:     log,
	}
}

// Chat envia o prompt de sistema e a conversa para o gateway e devolve o
// texto livre da resposta final do agente.
func (c *Client) Chat(ctx context.Context, system string, messages []Message) (string, error) {
	body, _ := json.Marshal(chatRequest{System: system, Messages: messages})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent chat: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return "", fmt.Errorf("agent chat http %d", res.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("agent chat decode: %w", err)
	}
	c.log.Debug("agent chat done",
		zap.String("requestId", reqID),
		zap.Duration("took", time.Since(start)),
	)
	return out.Response, nil
}

// PlaceBet conduz um turno da conversa de aposta: o agente pode pedir mais
// informação ou, com tudo confirmado, executar a transferência e responder no
// formato de confirmação parseável.
func (c *Client) PlaceBet(ctx context.Context, games []model.Game, messages []Message) (string, error) {
	return c.Chat(ctx, bettingSystemPrompt(games, c.Wallets), messages)
}

// ExecutePayout pede ao agente pagador a transferência do payout e extrai o
// id da transação da resposta. Implementa store.PayoutExecutor.
func (c *Client) ExecutePayout(ctx context.Context, bet model.Bet) (string, error) {
	system := payoutSystemPrompt(bet, c.Wallets)
	resp, err := c.Chat(ctx, system, []Message{{
		Role:    "user",
		Content: fmt.Sprintf("Execute the payout of %.2f USDC for bet %s now.", bet.TotalPayout, bet.ID),
	}})
	if err != nil {
		return "", err
	}

	m := txIDRe.FindStringSubmatch(resp)
	if m == nil {
		return "", fmt.Errorf("payout response missing transaction id: %q", resp)
	}
	return m[1], nil
}
