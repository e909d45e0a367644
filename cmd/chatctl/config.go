package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// CHATCTL_BADGER_FILEPATH is only needed by the store commands
	BadgerFilepath string `envconfig:"BADGER_FILEPATH"`
	TokenSecret    string `envconfig:"TOKEN_SECRET"`
	TokenIssuer    string `envconfig:"TOKEN_ISSUER"`
	// CHATCTL_TOKEN_DURATION bounds the lifetime of minted development tokens
	TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`
	// CHATCTL_COLOURS enables colorized output
	Colours bool `envconfig:"COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("chatctl", &cfg)
	return cfg, err
}

func (c Config) StorePath() (string, error) {
	if c.BadgerFilepath == "" {
		return "", fmt.Errorf("CHATCTL_BADGER_FILEPATH is required for -follow, -unfollow and -history")
	}
	return c.BadgerFilepath, nil
}
