package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Redis      Redis
	Kafka      Kafka
	Prometheus Prometheus
	Feed       Feed
}

type HTTPServer struct {
	Address string
	Port    int
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
}

type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type Kafka struct {
	Brokers   []string
	PostTopic string
	UserTopic string
	GroupID   string
}

type Prometheus struct {
	Address string
	Port    int
}

type Feed struct {
	CacheSize    int
	DefaultLimit int
	MaxLimit     int
	StoreTimeout time.Duration
	FolloweesTTL time.Duration
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8084)

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "feed-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "feedservice")
	viper.SetDefault("database.migrations_path", "migrations")

	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("kafka.brokers", []string{"kafka:9092"})
	viper.SetDefault("kafka.post_topic", "post.events")
	viper.SetDefault("kafka.user_topic", "user.events")
	viper.SetDefault("kafka.group_id", "feed-service")

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9104)

	viper.SetDefault("feed.cache_size", 50)
	viper.SetDefault("feed.default_limit", 50)
	viper.SetDefault("feed.max_limit", 100)
	viper.SetDefault("feed.store_timeout", "3s")
	viper.SetDefault("feed.followees_ttl", "24h")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Error reading config file: %s", err)
		os.Exit(1)
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address: viper.GetString("http_server.address"),
			Port:    viper.GetInt("http_server.port"),
		},
		Database: Database{
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
		},
		Redis: Redis{
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Kafka: Kafka{
			Brokers:   viper.GetStringSlice("kafka.brokers"),
			PostTopic: viper.GetString("kafka.post_topic"),
			UserTopic: viper.GetString("kafka.user_topic"),
			GroupID:   viper.GetString("kafka.group_id"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Feed: Feed{
			CacheSize:    viper.GetInt("feed.cache_size"),
			DefaultLimit: viper.GetInt("feed.default_limit"),
			MaxLimit:     viper.GetInt("feed.max_limit"),
			StoreTimeout: viper.GetDuration("feed.store_timeout"),
			FolloweesTTL: viper.GetDuration("feed.followees_ttl"),
		},
	}

	return config
}
