package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/shared/cache"
	"github.com/radieske/agent-sportsbook-poc/internal/shared/config"
	"github.com/radieske/agent-sportsbook-poc/internal/shared/logger"
	"github.com/radieske/agent-sportsbook-poc/internal/shared/metrics"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/agent"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/confirm"
	sbhttp "github.com/radieske/agent-sportsbook-poc/internal/sportsbook/http"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/odds"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/producer"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/sim"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/store"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/ws"
	"github.com/radieske/agent-sportsbook-poc/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Board de referência: snapshot do Redis quando disponível, senão odds.json
	board, err := loadBoard(ctx, cfg, log)
	if err != nil {
		log.Fatal("load odds board", zap.Error(err))
	}
	log.Info("odds board loaded", zap.Int("games", len(board.Games())))

	// Publisher de eventos: Kafka quando há broker, senão noop
	var publ producer.Publisher = producer.Noop{}
	if cfg.KafkaBrokers != "" {
		kp := producer.NewKafkaPublisher(cfg.KafkaBrokers, cfg.TopicBetPlaced, cfg.TopicBetResolved, cfg.TopicBetPaid)
		defer kp.Close()
		publ = kp
	}

	// Métricas Prometheus do ciclo de vida das apostas
	betsPlaced := prometheus.NewCounter(prometheus.CounterOpts{Name: "sportsbook_bets_placed_total", Help: "apostas inseridas na sessão"})
	betsResolved := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "sportsbook_bets_resolved_total", Help: "apostas resolvidas por resultado"}, []string{"result"})
	betsPaid := prometheus.NewCounter(prometheus.CounterOpts{Name: "sportsbook_bets_paid_total", Help: "payouts concluídos"})
	segmentsDropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "sportsbook_confirmations_dropped_total", Help: "segmentos de confirmação descartados pelo parser"})
	agentErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "sportsbook_agent_errors_total", Help: "falhas de chamada ao agente externo"})
	wsClients := prometheus.NewGauge(prometheus.GaugeOpts{Name: "sportsbook_ws_connections", Help: "clientes WebSocket conectados"})
	prometheus.MustRegister(betsPlaced, betsResolved, betsPaid, segmentsDropped, agentErrors, wsClients)

	// Agente externo (colocação de aposta e payout)
	agentCli := agent.New(cfg.AgentURL, agent.Wallets{
		Bettor:     cfg.BettorWallet,
		Sportsbook: cfg.SportsbookWallet,
	}, log)

	// Store da sessão: dono das apostas, do cache de desfechos e dos timers
	simulator := sim.NewSeeded(time.Now().UnixNano())
	st := store.New(log, simulator, agentCli, cfg.SettleDelay)
	defer st.Close()

	hub := ws.NewHub(log)
	hub.OnConnect = func() { wsClients.Inc() }
	hub.OnDisconnect = func() { wsClients.Dec() }

	st.OnPlaced = func(b model.Bet) {
		betsPlaced.Inc()
		_ = publ.BetPlaced(ctx, events.BetPlaced{
			BetID:            b.ID,
			Team:             b.Team,
			Matchup:          b.Matchup,
			Amount:           b.Amount,
			Profit:           b.Profit,
			TotalPayout:      b.TotalPayout,
			BetTransactionID: b.BetTransactionID,
		})
	}
	st.OnResolved = func(b model.Bet) {
		result := "lost"
		if b.DidWin != nil && *b.DidWin {
			result = "won"
		}
		betsResolved.WithLabelValues(result).Inc()
		_ = publ.BetResolved(ctx, events.BetResolved{
			BetID:     b.ID,
			Matchup:   b.Matchup,
			HomeScore: b.GameOutcome.HomeScore,
			AwayScore: b.GameOutcome.AwayScore,
			Winner:    string(b.GameOutcome.Winner),
			DidWin:    b.DidWin != nil && *b.DidWin,
		})
	}
	st.OnPaid = func(b model.Bet) {
		betsPaid.Inc()
		_ = publ.BetPaid(ctx, events.BetPaid{
			BetID:               b.ID,
			TotalPayout:         b.TotalPayout,
			PayoutTransactionID: b.PayoutTransactionID,
		})
	}
	st.OnChange = hub.BroadcastBets

	parser := confirm.New(log, board)
	parser.OnDropped = func() { segmentsDropped.Inc() }

	api := sbhttp.NewServer(log, board, st, agentCli, parser, hub.HandleWS)
	api.OnAgentError = func() { agentErrors.Inc() }

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(context.Context) error { return nil })
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	go func() {
		log.Info("sportsbook listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("api", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
	st.Close() // cancela timers pendentes antes de descartar a sessão
}

// loadBoard resolve a fonte do board: Redis (snapshot do fetch-odds) quando
// configurado e presente, arquivo local caso contrário.
func loadBoard(ctx context.Context, cfg config.Config, log *zap.Logger) (*odds.Board, error) {
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()

		board, err := odds.LoadRedis(ctx, rdb, odds.RedisKey)
		if err != nil {
			return nil, err
		}
		if board != nil {
			log.Info("odds board loaded from redis", zap.String("key", odds.RedisKey))
			return board, nil
		}
		log.Warn("odds snapshot missing in redis, falling back to file", zap.String("file", cfg.OddsFile))
	}
	return odds.LoadFile(cfg.OddsFile)
}
