package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docgate/internal/application/usecase"
	"docgate/internal/infrastructure/broker"
	"docgate/internal/infrastructure/database"
	"docgate/internal/infrastructure/engine"
	"docgate/internal/infrastructure/grpcserver"
	"docgate/internal/infrastructure/minio"
	"docgate/internal/infrastructure/ocr"
	"docgate/internal/infrastructure/workspace"
	"docgate/pkg/logger"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                  `yaml:"environment"`
	HTTPServer      HTTPServerConfig        `yaml:"http_server"`
	GRPCServer      grpcserver.Config       `yaml:"grpc_server"`
	Validator       usecase.ValidatorConfig `yaml:"validator"`
	Converter       usecase.ConverterConfig `yaml:"converter"`
	Engine          engine.Config           `yaml:"engine"`
	Workspace       workspace.Config        `yaml:"workspace"`
	OCR             ocr.Config              `yaml:"ocr"`
	MinIOClient     minio.ClientConfig      `yaml:"minio_client"`
	MinIOArchiver   minio.ArchiverConfig    `yaml:"minio_archiver"`
	DBConfig        database.Config         `yaml:"db_config"`
	BrokerConfig    broker.Config           `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig  `yaml:"publisher_config"`
	Logger          logger.Config           `yaml:"logger"`
}

type HTTPServerConfig struct {
	Address          string   `yaml:"address"`
	BodyLimit        string   `yaml:"body_limit"`
	RateLimit        float64  `yaml:"rate_limit_per_second"`
	AllowOrigins     []string `yaml:"allow_origins"`
	ShutdownTimeout  int64    `yaml:"shutdown_timeout_in_ms"`
	EnableMetrics    bool     `yaml:"enable_metrics"`
	HistoryPageLimit int64    `yaml:"history_page_limit"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := Default()

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	// An absent token leaves the conversion endpoint open.
	config.Converter.Secret = os.Getenv("CONVERSION_TOKEN")
	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.BrokerConfig.URI = os.Getenv("BROKER_URI")

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		Environment: "dev",
		HTTPServer: HTTPServerConfig{
			Address:          ":10000",
			BodyLimit:        "50M",
			RateLimit:        20,
			AllowOrigins:     []string{"*"},
			ShutdownTimeout:  10000,
			EnableMetrics:    true,
			HistoryPageLimit: 100,
		},
		Validator: usecase.DefaultValidatorConfig(),
		Converter: usecase.DefaultConverterConfig(),
		Engine: engine.Config{
			Binary:  "soffice",
			Timeout: 60000,
		},
		OCR: ocr.DefaultConfig(),
		MinIOArchiver: minio.ArchiverConfig{
			Timeout: 5000,
		},
		DBConfig: database.Config{
			ConnectionTimeout: 5000,
			QueryTimeout:      3000,
		},
		PublisherConfig: broker.PublisherConfig{
			Timeout: 1000,
		},
	}
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.HTTPServer.Address == "" {
		return errors.New("http_server.address is empty")
	}

	if c.Engine.Binary == "" {
		return errors.New("engine.binary is empty")
	}

	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("engine.timeout_in_ms must be positive, got %d", c.Engine.Timeout)
	}

	if err := c.Validator.Check(); err != nil {
		return err
	}

	if err := c.Converter.Check(); err != nil {
		return err
	}

	if err := c.OCR.Check(); err != nil {
		return err
	}

	if c.MinIOArchiver.Enabled {
		if c.MinIOArchiver.Bucket == "" {
			return errors.New("minio_archiver.bucket is required when archiving is enabled")
		}

		if c.MinIOArchiver.Timeout <= 0 {
			return fmt.Errorf("minio_archiver.timeout_in_ms must be positive, got %d", c.MinIOArchiver.Timeout)
		}
	}

	if c.DBConfig.Enabled {
		if c.DBConfig.URI == "" {
			return errors.New("DATABASE_URI is required when the audit history is enabled")
		}

		if c.DBConfig.ConnectionTimeout <= 0 || c.DBConfig.QueryTimeout <= 0 {
			return errors.New("db_config timeouts must be positive")
		}
	}

	if c.BrokerConfig.Enabled {
		if c.BrokerConfig.URI == "" {
			return errors.New("BROKER_URI is required when conversion events are enabled")
		}

		if c.PublisherConfig.Timeout <= 0 {
			return fmt.Errorf("publisher_config.timeout_in_ms must be positive, got %d", c.PublisherConfig.Timeout)
		}
	}

	return nil
}
