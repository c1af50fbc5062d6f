package configs

import (
	"github.com/bluewud/rate-engine/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config carries every knob the rate engine needs. Carrier credentials are
// injected here once; business logic never reads the environment directly.
// An empty credential puts that carrier's strategy in simulation mode.
type Config struct {
	Port string `mapstructure:"PORT" validate:"required"`

	// Carrier credentials / modes
	DelhiveryToken  string `mapstructure:"DELHIVERY_TOKEN"`
	DelhiveryMode   string `mapstructure:"DELHIVERY_MODE" validate:"oneof=test live"`
	BluedartLicense string `mapstructure:"BLUEDART_LICENSE_KEY"`

	// Live rate fan-out
	LiveRateTimeoutSec int `mapstructure:"LIVE_RATE_TIMEOUT_SEC" validate:"min=1,max=30"`
	LiveRatePerMin     int `mapstructure:"LIVE_RATE_PER_MIN" validate:"min=0"` // 0 = unlimited

	// Redis (carrier performance stats + distributed throttle); optional
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Kafka (delivery outcome events); optional, empty disables publishing
	KafkaBrokers      string `mapstructure:"KAFKA_BROKERS"`
	KafkaOutcomeTopic string `mapstructure:"KAFKA_OUTCOME_TOPIC"`
	KafkaPartition    uint32 `mapstructure:"KAFKA_PARTITION" validate:"min=1"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DELHIVERY_MODE", "test")
	viper.SetDefault("LIVE_RATE_TIMEOUT_SEC", "8")
	viper.SetDefault("LIVE_RATE_PER_MIN", "0")
	viper.SetDefault("KAFKA_OUTCOME_TOPIC", "shipment-outcomes")
	viper.SetDefault("KAFKA_PARTITION", "4")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/rate-api/configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
