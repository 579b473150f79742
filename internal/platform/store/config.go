package store

import (
	"time"

	"gracewell/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG   PGConfig
	CH   CHConfig
	NATS NATSConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// NATSConfig configures nats
type NATSConfig struct {
	Enabled   bool
	URL       string
	JetStream bool
	Stream    string
	Subjects  []string
}

// FromEnv reads SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_* and SERVICE_NATS_*
// A backend is enabled when its DBURL or URL is set; requirePG panics when postgres is missing
func FromEnv(root config.Conf, role string, requirePG bool) Config {
	pgc := root.Prefix("SERVICE_PGSQL_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")
	nc := root.Prefix("SERVICE_NATS_")

	pgURL := pgc.MayString("DBURL", "")
	if requirePG {
		pgURL = pgc.MustString("DBURL")
	}
	chURL := chc.MayString("DBURL", "")
	natsURL := nc.MayString("URL", "")

	return Config{
		AppName: "gracewell-" + role,
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pgc.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 500),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			ConnectRetries: pgc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:    chURL != "",
			URL:        chURL,
			ClientName: "gracewell",
			ClientTag:  role,
		},
		NATS: NATSConfig{
			Enabled:   natsURL != "",
			URL:       natsURL,
			JetStream: nc.MayBool("JETSTREAM", true),
			Stream:    nc.MayString("STREAM", "GRACEWELL"),
			Subjects:  nc.MayCSV("SUBJECTS", []string{"gracewell.>"}),
		},
	}
}
