package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/strenlab/trainload/internal/trainload"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"-"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres, the record store
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis, sessions and rate limiting
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`

	// analytics engine tuning; zero values fall back to the defaults
	Engine trainload.Config `toml:"engine"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var configsPerEnv Toml
	if _, err := toml.DecodeFile(path, &configsPerEnv); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := configsPerEnv.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s missing", env)
	}

	cfg.Environment = env
	applyEngineDefaults(&cfg.Engine)

	return cfg, nil
}

func applyEngineDefaults(engineCfg *trainload.Config) {
	defaults := trainload.DefaultConfig()
	if engineCfg.Load.RunLoadWeight == 0 {
		engineCfg.Load.RunLoadWeight = defaults.Load.RunLoadWeight
	}
	if engineCfg.Load.ReferencePaceMPS == 0 {
		engineCfg.Load.ReferencePaceMPS = defaults.Load.ReferencePaceMPS
	}
	if engineCfg.Fatigue.AcuteBuckets == 0 {
		engineCfg.Fatigue.AcuteBuckets = defaults.Fatigue.AcuteBuckets
	}
	if engineCfg.Fatigue.ChronicBuckets == 0 {
		engineCfg.Fatigue.ChronicBuckets = defaults.Fatigue.ChronicBuckets
	}
	if engineCfg.Deload.T1Score == 0 {
		engineCfg.Deload.T1Score = defaults.Deload.T1Score
	}
	if engineCfg.Deload.T2Score == 0 {
		engineCfg.Deload.T2Score = defaults.Deload.T2Score
	}
	if engineCfg.Deload.SustainedPoints == 0 {
		engineCfg.Deload.SustainedPoints = defaults.Deload.SustainedPoints
	}
	if engineCfg.Deload.MaxOverreachingPoints == 0 {
		engineCfg.Deload.MaxOverreachingPoints = defaults.Deload.MaxOverreachingPoints
	}
}
