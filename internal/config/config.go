package config

import (
	"encoding/json"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UTMPreset is one entry of the UTM_CATS map: the source/medium tags to
// stamp on minted urls plus the list of content variants to mint.
type UTMPreset struct {
	Source  string   `json:"source"`
	Medium  string   `json:"medium"`
	Content []string `json:"content"`
}

// Config is built once at startup and passed by reference into the
// services. No package reads the environment after LoadConfig returns.
type Config struct {
	HTTPPort string

	DBType string // sqlite or postgres
	DBPath string // file path for sqlite, dsn for postgres

	APIUsername string
	APIPassword string

	SubscriptionURL string
	MainURL         string
	UTMCategories   map[string]UTMPreset

	BitlyToken string

	RedisAddr    string
	SnapshotTTL  time.Duration
	WarmSchedule string // cron spec for the snapshot warm task, empty disables it
}

func LoadConfig() *Config {
	cnf := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "4000"),
		DBType:          getEnv("DB_TYPE", "sqlite"),
		DBPath:          getEnv("DB_PATH", ".db/linkdealer.db"),
		APIUsername:     getEnv("API_USERNAME", "root"),
		APIPassword:     getEnv("API_PASSWORD", "pass"),
		SubscriptionURL: getEnv("SUB_URL", ""),
		MainURL:         getEnv("MAIN_URL", ""),
		BitlyToken:      getEnv("TOKEN_BITLY", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		WarmSchedule:    getEnv("WARM_SCHEDULE", "@every 1m"),
		UTMCategories:   map[string]UTMPreset{},
		SnapshotTTL:     time.Hour,
	}

	if ttl := os.Getenv("SNAPSHOT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			logrus.Warnf("invalid SNAPSHOT_TTL %q, using %v", ttl, cnf.SnapshotTTL)
		} else {
			cnf.SnapshotTTL = d
		}
	}

	if cats := os.Getenv("UTM_CATS"); cats != "" {
		if err := json.Unmarshal([]byte(cats), &cnf.UTMCategories); err != nil {
			logrus.Errorf("failed to parse UTM_CATS: %v", err)
		}
	}

	return cnf
}

// GetDb opens the configured database. The process cannot run without one,
// so a failure here is fatal.
func GetDb(cnf *Config) *gorm.DB {
	var db *gorm.DB
	var err error

	switch cnf.DBType {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cnf.DBPath), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cnf.DBPath), &gorm.Config{})
	}

	if err != nil {
		logrus.Fatalf("failed to connect to %s database: %v", cnf.DBType, err)
	}

	return db
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
