package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	ServerPort     string `envconfig:"SERVER_PORT"      default:":8087"`
	PosPort        string `envconfig:"POS_PORT"         default:":8086"`
	BackendURL     string `envconfig:"BACKEND_URL"      default:"http://localhost:8087"`
	RequestTimeout int    `envconfig:"REQUEST_TIMEOUT"  default:"5"` // seconds, per backend call
	LogLevel       string `envconfig:"LOG_LEVEL"        default:"info"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: ServerPort=%s, PosPort=%s, BackendURL=%s, LogLevel=%s",
			config.ServerPort, config.PosPort, config.BackendURL, config.LogLevel)
	})
	return &config
}

// NewLogger builds the shared logrus logger the way every binary uses it.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
