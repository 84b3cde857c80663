package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" validate:"required"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

// ConnString renders a libpq keyword/value connection string for pgxpool.
func (d DatabaseConfig) ConnString() string {
	s := fmt.Sprintf("host=%s port=%s dbname=%s", d.Host, d.Port, d.DBName)
	if d.User != "" {
		s += " user=" + d.User
	}
	if d.Password != "" {
		s += " password=" + d.Password
	}
	if d.SSLMode != "" {
		s += " sslmode=" + d.SSLMode
	}
	if d.MaxConns > 0 {
		s += fmt.Sprintf(" pool_max_conns=%d", d.MaxConns)
	}
	return s
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider" validate:"omitempty,oneof=s3"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type SeedConfig struct {
	Users        int       `mapstructure:"users" validate:"gte=0"`
	Restaurants  int       `mapstructure:"restaurants" validate:"gte=1"`
	Couriers     int       `mapstructure:"couriers" validate:"gte=1"`
	OrdersPerDay int       `mapstructure:"orders_per_day" validate:"gte=0"`
	Days         int       `mapstructure:"days" validate:"gte=1"`
	StartDate    time.Time `mapstructure:"start_date"`
	Zones        []string  `mapstructure:"zones" validate:"min=1"`
	Categories   []string  `mapstructure:"categories" validate:"min=1"`
	CancelRate   float64   `mapstructure:"cancel_rate" validate:"gte=0,lte=1"`
	Seed         int64     `mapstructure:"seed"`
}

type Config struct {
	Timezone       string        `mapstructure:"timezone"`
	Interval       Interval      `mapstructure:"interval" validate:"oneof=daily weekly monthly"`
	Workers        int           `mapstructure:"workers" validate:"gte=1,lte=64"`
	TopN           int           `mapstructure:"top_n" validate:"gte=1"`
	OnTimeGrace    time.Duration `mapstructure:"on_time_grace" validate:"gte=0"`
	PeakQuantile   float64       `mapstructure:"peak_quantile" validate:"gte=0,lte=1"`
	PeakMaxWindows int           `mapstructure:"peak_max_windows" validate:"gte=1"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	MetricsFile    string        `mapstructure:"metrics_file"`

	LogLevel  string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json console"`

	Database DatabaseConfig `mapstructure:"database"`

	OutputFormat      string             `mapstructure:"output_format" validate:"oneof=console json csv parquet kafka"`
	OutputDestination string             `mapstructure:"output_destination" validate:"oneof=local s3"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	KafkaTopic       string `mapstructure:"kafka_topic"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	Seed SeedConfig `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "UTC")
	v.SetDefault("interval", string(IntervalDaily))
	v.SetDefault("workers", 4)
	v.SetDefault("top_n", 10)
	v.SetDefault("on_time_grace", "0s")
	v.SetDefault("peak_quantile", 0.75)
	v.SetDefault("peak_max_windows", 3)
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.dbname", "foodash")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("output_format", OutputFormatConsole)
	v.SetDefault("output_destination", OutputDestinationLocal)
	v.SetDefault("output_path", "output")
	v.SetDefault("output_folder", "dashboards")
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", "dashboard_snapshots")

	v.SetDefault("seed.users", 500)
	v.SetDefault("seed.restaurants", 20)
	v.SetDefault("seed.couriers", 15)
	v.SetDefault("seed.orders_per_day", 120)
	v.SetDefault("seed.days", 90)
	v.SetDefault("seed.zones", []string{"urban_core", "urban_residential", "suburban"})
	v.SetDefault("seed.categories", []string{"Pizza", "Burgers", "Sushi", "Salads", "Desserts", "Drinks"})
	v.SetDefault("seed.cancel_rate", 0.08)
	v.SetDefault("seed.seed", 42)
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	return loadConfig(viper.GetViper(), cfgFile)
}

func loadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Default config location
		v.AddConfigPath("examples")
		v.SetConfigName("config")
		v.SetConfigType("json")
	}

	v.SetEnvPrefix("foodash")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv() // Read in environment variables that match
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit file must exist; the default location is optional
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the struct tags and the timezone name.
func (cfg *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves the time zone every timestamp is normalized to before bucketing.
func (cfg *Config) Location() (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// LoadCategoryData replaces the seed categories with the second column of a
// CSV file (header row skipped), e.g. "id,name".
func (cfg *Config) LoadCategoryData(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Read()

	var categories []string
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(fields) < 2 {
			return fmt.Errorf("category row %v: want 2 fields, got %d", fields, len(fields))
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("category row %v: bad id: %w", fields, err)
		}
		categories = append(categories, fields[1])
	}
	if len(categories) > 0 {
		cfg.Seed.Categories = categories
	}
	return nil
}
