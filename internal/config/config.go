// Package config assembles the application configuration from four
// sources with increasing priority: built-in defaults, a JSON config
// file, environment variables and command-line flags.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the board.
type Config struct {
	RunAddr         string `env:"SERVER_ADDRESS" json:"server_address" validate:"hostname_port"`
	UsersEndpoint   string `env:"USERS_ENDPOINT" json:"users_endpoint" validate:"url"`
	PostsEndpoint   string `env:"POSTS_ENDPOINT" json:"posts_endpoint" validate:"url"`
	LogLevel        string `env:"LOG_LEVEL" json:"log_level" validate:"loglevel"`
	UsersPageSize   int    `env:"USERS_PAGE_SIZE" json:"users_page_size" validate:"gt=0"`
	PostsPageSize   int    `env:"POSTS_PAGE_SIZE" json:"posts_page_size" validate:"gt=0"`
	PostsFetchLimit int    `env:"POSTS_FETCH_LIMIT" json:"posts_fetch_limit" validate:"gt=0"`
}

var defaultConfig = Config{
	RunAddr:         ":8080",
	UsersEndpoint:   "https://jsonplaceholder.typicode.com/users",
	PostsEndpoint:   "https://jsonplaceholder.typicode.com/posts",
	LogLevel:        "info",
	UsersPageSize:   5,
	PostsPageSize:   5,
	PostsFetchLimit: 20,
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[fieldLevel.Field().String()]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

func applyDefaults(values *Config, defaults Config) {
	overlay(values, defaults)
}

// overlay copies every non-zero field of src over dst.
func overlay(dst *Config, src Config) {
	if src.RunAddr != "" {
		dst.RunAddr = src.RunAddr
	}

	if src.UsersEndpoint != "" {
		dst.UsersEndpoint = src.UsersEndpoint
	}

	if src.PostsEndpoint != "" {
		dst.PostsEndpoint = src.PostsEndpoint
	}

	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}

	if src.UsersPageSize != 0 {
		dst.UsersPageSize = src.UsersPageSize
	}

	if src.PostsPageSize != 0 {
		dst.PostsPageSize = src.PostsPageSize
	}

	if src.PostsFetchLimit != 0 {
		dst.PostsFetchLimit = src.PostsFetchLimit
	}
}

func fromJSONFile(path string) (Config, error) {
	var values Config

	content, err := os.ReadFile(path)
	if err != nil {
		return values, err
	}

	err = json.Unmarshal(content, &values)

	return values, err
}

// InitOption customizes New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing skips command-line parsing, mainly for tests.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// New builds the configuration. Source priority, lowest first:
// defaults, JSON file (the CONFIG environment variable or the -c flag),
// environment variables, command-line flags.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := Config{}
	applyDefaults(&values, defaultConfig)

	configFile := os.Getenv("CONFIG")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.StringVar(&configFile, "c", configFile, "path to a JSON config file")
	fromFlags := Config{}
	flags.StringVar(&fromFlags.RunAddr, "a", "", "address and port to run the server")
	flags.StringVar(&fromFlags.UsersEndpoint, "u", "", "users collection endpoint")
	flags.StringVar(&fromFlags.PostsEndpoint, "p", "", "posts collection endpoint")
	flags.StringVar(&fromFlags.LogLevel, "l", "", "logger level")

	if !options.disableFlagsParsing {
		if err := flags.Parse(os.Args[1:]); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		fromFile, err := fromJSONFile(configFile)
		if err != nil {
			return nil, err
		}
		overlay(&values, fromFile)
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, err
	}
	overlay(&values, fromEnv)

	overlay(&values, fromFlags)

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &values, nil
}
