package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type catalog struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type storage struct {
	Driver        string `mapstructure:"driver"`
	LevelDBPath   string `mapstructure:"leveldb_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	SQLDB         string `mapstructure:"sql_db"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether mutual TLS is configured.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	OrdersTopic        string   `mapstructure:"orders_topic"`
	TLS                tlsFiles `mapstructure:"tls"`
}

// Enabled reports whether order events should be published.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type admin struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Catalog        catalog    `mapstructure:"catalog"`
	Storage        storage    `mapstructure:"storage"`
	Broker         broker     `mapstructure:"broker"`
	Admin          admin      `mapstructure:"admin"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")

	v.SetDefault("catalog.base_url", "https://dummyjson.com")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.max_attempts", 3)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.leveldb_path", "storefront-data")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.sql_db", "")

	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.orders_topic", "storefront.order")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")

	v.SetDefault("admin.email", "admin@demo.com")
	v.SetDefault("admin.password", "admin123")
}

// Load reads the config file named by the --config flag or
// STOREFRONT_CONFIG_FILE and exits the process on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile builds the config from defaults, the YAML file at path
// (skipped when path is empty) and STOREFRONT_* environment variables,
// in increasing priority.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Catalog:
	BaseURL=%q
	Timeout=%q
	MaxAttempts=%d

	Storage:
	Driver=%q
	LevelDBPath=%q
	RedisAddr=%q
	RedisDB=%d
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	OrdersTopic=%q
	TLS=%t

	Admin:
	Email=%q
	Password=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Catalog.BaseURL,
		c.Catalog.Timeout,
		c.Catalog.MaxAttempts,
		c.Storage.Driver,
		c.Storage.LevelDBPath,
		c.Storage.RedisAddr,
		c.Storage.RedisDB,
		mask(c.Storage.SQLDB),
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.OrdersTopic,
		c.Broker.TLS.Enabled(),
		c.Admin.Email,
		mask(c.Admin.Password),
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
