package config

import (
	"os"
	"strconv"
	"time"

	ctopics "github.com/radieske/agent-sportsbook-poc/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução.
// Redis e Kafka são opcionais no demo: endereço vazio desliga o recurso.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // ex: "sportsbook", "fetch-odds"

	// Board de referência
	OddsFile  string // odds.json gerado pelo cmd/fetch-odds
	RedisAddr string // "" desliga o snapshot em Redis

	// Eventos
	KafkaBrokers     string // "a:9092,b:9092"; "" desliga o publisher
	TopicBetPlaced   string
	TopicBetResolved string
	TopicBetPaid     string

	// Agente externo (LLM + ferramenta de pagamento)
	AgentURL         string
	BettorWallet     string
	SportsbookWallet string

	// Delay entre a colocação da aposta e a simulação do desfecho
	SettleDelay time.Duration

	// The Odds API (cmd/fetch-odds)
	OddsAPIKey string
	Sport      string

	// Portas do serviço atual
	HTTPPort    string // API pública
	MetricsPort string // exclusiva para /metrics e /healthz
}

// Load carrega variáveis de ambiente com defaults de desenvolvimento local.
func Load() Config {
	svc := getEnv("SERVICE_NAME", "sportsbook")
	env := getEnv("ENV", "local")

	cfg := Config{
		Env:         env,
		ServiceName: svc,

		OddsFile:  getEnv("ODDS_FILE", "odds.json"),
		RedisAddr: getEnv("REDIS_ADDR", ""),

		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		TopicBetPlaced:   getEnv("KAFKA_TOPIC_BET_PLACED", ctopics.BetPlaced),
		TopicBetResolved: getEnv("KAFKA_TOPIC_BET_RESOLVED", ctopics.BetResolved),
		TopicBetPaid:     getEnv("KAFKA_TOPIC_BET_PAID", ctopics.BetPaid),

		AgentURL:         getEnv("AGENT_URL", "http://localhost:8090"),
		BettorWallet:     getEnv("BETTOR_WALLET_ADDRESS", ""),
		SportsbookWallet: getEnv("SPORTSBOOK_WALLET_ADDRESS", ""),

		SettleDelay: time.Duration(getEnvInt("SETTLE_DELAY_MS", 10000)) * time.Millisecond,

		OddsAPIKey: getEnv("ODDS_API_KEY", ""),
		Sport:      getEnv("ODDS_SPORT", "americanfootball_nfl"),
	}

	switch svc {
	case "sportsbook":
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	default:
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	}

	return cfg
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getEnvInt idem, convertendo para inteiro; valor inválido cai no default
func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
