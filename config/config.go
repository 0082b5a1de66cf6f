package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	XRPL      XRPLConfig      `mapstructure:"xrpl"`
	Trustline TrustlineConfig `mapstructure:"trustline"`
	Pinning   PinningConfig   `mapstructure:"pinning"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AES       AESConfig       `mapstructure:"aes"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// XRPLConfig describes the ledger node and submission policy.
type XRPLConfig struct {
	RPCURL           string        `mapstructure:"rpc_url"`
	FaucetURL        string        `mapstructure:"faucet_url"` // empty = no faucet funding
	IssuedCurrency   string        `mapstructure:"issued_currency"`
	IssuerAddress    string        `mapstructure:"issuer_address"`
	FeeFallbackDrops string        `mapstructure:"fee_fallback_drops"`
	LedgerHorizon    uint32        `mapstructure:"ledger_horizon"` // LastLedgerSequence = current + horizon
	FundingInterval  time.Duration `mapstructure:"funding_interval"`
	FundingAttempts  int           `mapstructure:"funding_attempts"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

// TrustlineConfig is the trust-establishment policy.
type TrustlineConfig struct {
	// DefaultLimit is the trust ceiling used when the caller does not
	// override it: large enough to read as "effectively unlimited".
	DefaultLimit string `mapstructure:"default_limit"`
}

// PinningConfig describes the metadata pinning service.
type PinningConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	GatewayURL     string        `mapstructure:"gateway_url"` // content retrieval endpoint
	APIKey         string        `mapstructure:"api_key"`
	Tag            string        `mapstructure:"tag"` // metadata tag grouping this deployment's records
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// AuthConfig guards the operator API surface.
type AuthConfig struct {
	Operator     string        `mapstructure:"operator"`      // operator login name
	PasswordHash string        `mapstructure:"password_hash"` // argon2id encoded hash
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiry    time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer    string        `mapstructure:"jwt_issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: XPG_ (XRPL Payroll Gateway).
// Nested keys use underscore: XPG_XRPL_RPC_URL, XPG_PINNING_API_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("xrpl.rpc_url", "https://s.altnet.rippletest.net:51234")
	v.SetDefault("xrpl.faucet_url", "")
	v.SetDefault("xrpl.issued_currency", "USD")
	v.SetDefault("xrpl.issuer_address", "")
	v.SetDefault("xrpl.fee_fallback_drops", "10")
	v.SetDefault("xrpl.ledger_horizon", 20)
	v.SetDefault("xrpl.funding_interval", "2s")
	v.SetDefault("xrpl.funding_attempts", 30)
	v.SetDefault("xrpl.request_timeout", "10s")
	v.SetDefault("trustline.default_limit", "1000000000")
	v.SetDefault("pinning.base_url", "https://api.pinata.cloud")
	v.SetDefault("pinning.gateway_url", "https://gateway.pinata.cloud")
	v.SetDefault("pinning.api_key", "")
	v.SetDefault("pinning.tag", "payroll-wallets")
	v.SetDefault("pinning.request_timeout", "15s")
	v.SetDefault("pinning.cache_ttl", "5m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payroll_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("auth.operator", "operator")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiry", "12h")
	v.SetDefault("auth.jwt_issuer", "xrpl-payroll-gateway")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: XPG_XRPL_RPC_URL -> xrpl.rpc_url
	v.SetEnvPrefix("XPG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.XRPL.LedgerHorizon == 0 {
		return nil, fmt.Errorf("xrpl.ledger_horizon must be positive")
	}

	return &cfg, nil
}
