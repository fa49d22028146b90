package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/agent"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
)

func gatewayStub(t *testing.T, reply string, capture *struct {
	System   string
	Messages []agent.Message
}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req struct {
			System   string          `json:"system"`
			Messages []agent.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if capture != nil {
			capture.System = req.System
			capture.Messages = req.Messages
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"response": reply})
	}))
}

func testWallets() agent.Wallets {
	return agent.Wallets{Bettor: "0xBETTOR", Sportsbook: "0xBOOK"}
}

func TestPlaceBetSendsGamesAndConversation(t *testing.T) {
	var captured struct {
		System   string
		Messages []agent.Message
	}
	srv := gatewayStub(t, "Which team do you like?", &captured)
	defer srv.Close()

	c := agent.New(srv.URL, testWallets(), zaptest.NewLogger(t))
	games := []model.Game{
		{HomeTeam: "New York Giants", AwayTeam: "Green Bay Packers", HomeOdds: -150, AwayOdds: 130},
	}
	msgs := []agent.Message{{Role: "user", Content: "bet $10 on the Giants"}}

	resp, err := c.PlaceBet(context.Background(), games, msgs)
	require.NoError(t, err)
	assert.Equal(t, "Which team do you like?", resp)

	assert.Contains(t, captured.System, "Green Bay Packers @ New York Giants")
	assert.Contains(t, captured.System, "Home: -150")
	assert.Contains(t, captured.System, "Away: +130")
	assert.Contains(t, captured.System, "0xBETTOR")
	assert.Contains(t, captured.System, "Bet Confirmed!")
	assert.Equal(t, msgs, captured.Messages)
}

func TestExecutePayoutExtractsTransactionID(t *testing.T) {
	var captured struct {
		System   string
		Messages []agent.Message
	}
	srv := gatewayStub(t, "Payout complete! 16.67 USDC sent to bettor.\nTransaction ID: pay-777", &captured)
	defer srv.Close()

	c := agent.New(srv.URL, testWallets(), zaptest.NewLogger(t))
	bet := model.Bet{
		ID: "b1", Team: "New York Giants",
		Matchup: "Green Bay Packers @ New York Giants", TotalPayout: 16.67,
	}

	txID, err := c.ExecutePayout(context.Background(), bet)
	require.NoError(t, err)
	assert.Equal(t, "pay-777", txID)
	assert.Contains(t, captured.System, "16.67 USDC")
	assert.Contains(t, captured.System, "0xBOOK")
}

func TestExecutePayoutMissingTransactionID(t *testing.T) {
	srv := gatewayStub(t, "Sorry, the transfer tool is unavailable right now.", nil)
	defer srv.Close()

	c := agent.New(srv.URL, testWallets(), zaptest.NewLogger(t))
	_, err := c.ExecutePayout(context.Background(), model.Bet{ID: "b1", TotalPayout: 10})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "transaction id"))
}

func TestChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := agent.New(srv.URL, testWallets(), zaptest.NewLogger(t))
	_, err := c.Chat(context.Background(), "sys", nil)
	require.Error(t, err)
}
