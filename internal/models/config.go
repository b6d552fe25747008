package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type TelemetryConfig struct {
	Enabled         bool               `mapstructure:"enabled"`
	Sink            string             `mapstructure:"sink"` // console, file, parquet, kafka, postgres
	OutputPath      string             `mapstructure:"output_path"`
	OutputFolder    string             `mapstructure:"output_folder"`
	KafkaBrokerList string             `mapstructure:"kafka_broker_list"`
	Database        DatabaseConfig     `mapstructure:"database"`
	CloudStorage    CloudStorageConfig `mapstructure:"cloud_storage"`
}

type SimulateConfig struct {
	Seed              int           `mapstructure:"seed"`
	StartDate         time.Time     `mapstructure:"start_date"`
	Duration          time.Duration `mapstructure:"duration"`
	InitialCustomers  int           `mapstructure:"initial_customers"`
	InitialDrivers    int           `mapstructure:"initial_drivers"`
	OrderFrequency    float64       `mapstructure:"order_frequency"` // requests per customer per hour
	AcceptProbability float64       `mapstructure:"accept_probability"`
	CancellationRate  float64       `mapstructure:"cancellation_rate"`
	MinBid            float64       `mapstructure:"min_bid"`
	MaxBid            float64       `mapstructure:"max_bid"`
}

type Config struct {
	BackendURL     string        `mapstructure:"backend_url"`
	SocketURL      string        `mapstructure:"socket_url"`
	MapsAPIKey     string        `mapstructure:"maps_api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// City bounds used when synthesising locations.
	CityName    string  `mapstructure:"city_name"`
	CityLat     float64 `mapstructure:"city_latitude"`
	CityLng     float64 `mapstructure:"city_longitude"`
	UrbanRadius float64 `mapstructure:"urban_radius"` // km

	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Simulate  SimulateConfig  `mapstructure:"simulate"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("backend_url", "http://localhost:3001")
	viper.SetDefault("request_timeout", "30s")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.SocketURL == "" {
		config.SocketURL = config.BackendURL
	}

	return &config, nil
}
