package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is shared by the console and the reference backend. Fields that only
// one side reads are ignored by the other.
type Config struct {
	APIBaseURL     string        `envconfig:"ORDER_API_URL" default:"http://localhost:8080"`
	APITimeout     time.Duration `envconfig:"ORDER_API_TIMEOUT" default:"0s"`
	TracingEnabled bool          `envconfig:"TRACING_ENABLED" default:"false"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LayoutFile     string        `envconfig:"FORM_LAYOUT_FILE" default:""`

	Port             string `envconfig:"PORT" default:"8080"`
	StoreBackend     string `envconfig:"STORE_BACKEND" default:"memory"`
	RedisURL         string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"orders"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic       string `envconfig:"KAFKA_TOPIC" default:"order-events"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
