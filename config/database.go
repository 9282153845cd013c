package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// DBConfig holds the PostgreSQL connection and pool settings (DB_*).
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"adminpanel"`
	Password string `env:"PASSWORD" envDefault:"adminpanel"`
	Name     string `env:"NAME"     envDefault:"adminpanel"`
	// SSLMode is passed through to libpq semantics: disable, require, verify-full.
	SSLMode string `env:"SSL_MODE" envDefault:"disable"`
	// SearchPath, when set, scopes every pooled connection to the given schemas.
	SearchPath string `env:"SEARCH_PATH"`

	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"    envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
}

// DSN renders the settings as a postgres:// URL. Credentials are escaped.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.SearchPath != "" {
		q.Set("search_path", c.SearchPath)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig selects one of three topologies: a single node (URI, plain
// host:port or redis:// URL), Sentinel (USE_SENTINEL) or Cluster (USE_CLUSTER).
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"`
	UseSentinel        bool     `env:"USE_SENTINEL"`
	ClusterNodes       []string `env:"CLUSTER_NODES"`
	UseCluster         bool     `env:"USE_CLUSTER"`
}
