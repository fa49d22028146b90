// Package ws transmite snapshots das apostas da sessão para a UI via
// WebSocket. Todo cliente conectado recebe o snapshot completo a cada mudança
// de estado no store; ninguém muta nada por aqui.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
)

// BetsUpdate é a mensagem enviada aos clientes a cada mudança.
type BetsUpdate struct {
	Type string      `json:"type"` // "bets"
	Bets []model.Bet `json:"bets"`
}

// Hub gerencia as conexões WebSocket da sessão.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*websocket.Conn

	// Callbacks de métricas (gauge de conexões).
	OnConnect    func()
	OnDisconnect func()
}

// NewHub cria o hub. Demo local: qualquer origem é aceita.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]*websocket.Conn),
	}
}

// HandleWS faz o upgrade e mantém a conexão até o cliente desconectar.
// Mensagens recebidas são lidas e descartadas (só respondemos a ping).
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	id := uuid.NewString()

	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
	if h.OnConnect != nil {
		h.OnConnect()
	}
	h.log.Info("ws client connected", zap.String("clientId", id))

	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
		_ = conn.Close()
		if h.OnDisconnect != nil {
			h.OnDisconnect()
		}
		h.log.Info("ws client disconnected", zap.String("clientId", id))
	}()

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "ping" {
			_ = conn.WriteJSON(map[string]string{"type": "pong"})
		}
	}
}

// BroadcastBets envia o snapshot atual para todos os clientes conectados.
// Conexões com falha de escrita são fechadas e removidas no loop de leitura.
func (h *Hub) BroadcastBets(bets []model.Bet) {
	msg, _ := json.Marshal(BetsUpdate{Type: "bets", Bets: bets})

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("clientId", id), zap.Error(err))
			_ = conn.Close()
		}
	}
}
