package config

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var Current = LoadConfiguration()

func LoadConfiguration() *Configuration {
	setDefaults()
	var config = readConfig()
	applyLogLevel(config.LogLevel)
	return config
}

func setDefaults() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetEnvPrefix("mongrove")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("batchSize", 500)
	viper.SetDefault("excludedDatabases", []string{"admin", "config", "local"})

	viper.SetDefault("source.uri", "")
	viper.SetDefault("source.timeout", "5s")
	viper.SetDefault("target.uri", "")
	viper.SetDefault("target.timeout", "5s")

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 8082)
	viper.SetDefault("metrics.timeout", "30s")
}

func readConfig() *Configuration {
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			log.Fatal().Err(err).Msg("Could not read configuration!")
		}
	}

	viper.AutomaticEnv()

	var config Configuration
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal().Err(err).Msg("Could not unmarshal configuration!")
	}

	return &config
}

func applyLogLevel(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
		log.Info().Msgf("Invalid log level %s. Info log level is used", logLevel)
	}

	log.Logger = zerolog.New(os.Stderr).Level(logLevel).With().Timestamp().Logger()
	if logLevel == zerolog.DebugLevel {
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
