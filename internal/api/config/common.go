package config

import "time"

// Config root configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig remote log sink, optional
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// ScraperConfig external scraping microservice
type ScraperConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	PostTimeout      time.Duration `mapstructure:"post_timeout"`
	LinksTimeout     time.Duration `mapstructure:"links_timeout"`
	TopCommentsCount int           `mapstructure:"top_comments_count"`
}

// IngestConfig ingestion scheduler
type IngestConfig struct {
	Spec         string        `mapstructure:"spec"`
	RunOnStart   bool          `mapstructure:"run_on_start"`
	RecentPosts  int           `mapstructure:"recent_posts"`
	LockTTL      time.Duration `mapstructure:"lock_ttl"`
	PassDeadline time.Duration `mapstructure:"pass_deadline"`
}

// MetricsConfig metrics history retention, HistoryLimit 0 means unbounded
type MetricsConfig struct {
	HistoryLimit int           `mapstructure:"history_limit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}
