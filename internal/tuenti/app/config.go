package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Object store backends.
const (
	ObjectStoreFS     = "fs"
	ObjectStoreGridFS = "gridfs"
)

type Config struct {
	Issuer   string   `env:"TUENTI_ISSUER"   envDefault:"tuenti"`
	Audience []string `env:"TUENTI_AUDIENCE" envDefault:"tuenti" envSeparator:","`

	DatabaseFile   string `env:"TUENTI_DATABASE_FILE"    envDefault:"tuenti.db"`
	PepperFile     string `env:"TUENTI_PEPPER_FILE"      envDefault:"pepper"`
	SigningKeyFile string `env:"TUENTI_SIGNING_KEY_FILE" envDefault:"signing.pem"`

	AccessTTL  time.Duration `env:"TUENTI_ACCESS_TTL"  envDefault:"15m"`
	RefreshTTL time.Duration `env:"TUENTI_REFRESH_TTL" envDefault:"720h"`

	ObjectStore    string `env:"TUENTI_OBJECTSTORE"      envDefault:"fs"`
	MediaDir       string `env:"TUENTI_MEDIA_DIR"        envDefault:"media"`
	MongoURI       string `env:"TUENTI_MONGO_URI"`
	MongoDatabase  string `env:"TUENTI_MONGO_DATABASE"   envDefault:"tuenti"`
	MongoBucket    string `env:"TUENTI_MONGO_BUCKET"     envDefault:"media_files"`
	MaxUploadBytes int64  `env:"TUENTI_MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// SMTP relay; empty logs mail instead of sending it.
	SMTPAddr     string `env:"TUENTI_SMTP_ADDR"`
	SMTPFrom     string `env:"TUENTI_SMTP_FROM" envDefault:"no-reply@tuenti.local"`
	SMTPUsername string `env:"TUENTI_SMTP_USERNAME"`
	SMTPPassword string `env:"TUENTI_SMTP_PASSWORD"`

	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// LogOutput defaults to stdout.
	LogOutput io.Writer `env:"-"`
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists. Variables already set win over the
// file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.ObjectStore {
	case ObjectStoreFS:
	case ObjectStoreGridFS:
		if c.MongoURI == "" {
			return errors.New("TUENTI_MONGO_URI is required with TUENTI_OBJECTSTORE=gridfs")
		}
	default:
		return fmt.Errorf("unknown TUENTI_OBJECTSTORE %q (want fs or gridfs)", c.ObjectStore)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("TUENTI_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
