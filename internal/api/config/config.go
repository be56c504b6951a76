package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg global configuration instance
var Cfg *Config

// LoadConfig reads ./configs/config.yaml, SMM_* environment variables override file values
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("SMM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "smm")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("logstash.index", "logstash-smm")

	v.SetDefault("scraper.base_url", "http://localhost:5000")
	v.SetDefault("scraper.post_timeout", 30*time.Second)
	v.SetDefault("scraper.links_timeout", 60*time.Second)
	v.SetDefault("scraper.top_comments_count", 3)

	v.SetDefault("ingest.spec", "@every 30m")
	v.SetDefault("ingest.run_on_start", true)
	v.SetDefault("ingest.recent_posts", 10)
	v.SetDefault("ingest.lock_ttl", 25*time.Minute)
	v.SetDefault("ingest.pass_deadline", 0)

	v.SetDefault("metrics.history_limit", 0)
	v.SetDefault("metrics.cache_ttl", 10*time.Minute)
}
