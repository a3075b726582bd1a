package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DUKAMART_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"DUKAMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKAMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DUKAMART_DB_DSN"`
	Driver string `envconfig:"DUKAMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DUKAMART_DB_HOST"`
	LegacyPort     int    `envconfig:"DUKAMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DUKAMART_DB_USER"`
	LegacyPassword string `envconfig:"DUKAMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"DUKAMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"DUKAMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DUKAMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DUKAMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DUKAMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKAMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DUKAMART_AUTO_MIGRATE" default:"false"`
}

// IsSQLite reports whether the sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	// sqlite DSNs are file paths; there are no discrete parts to assemble
	// them from.
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s is %s", EnvDBDSN, EnvDBDriver, DBDriverSQLite)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
