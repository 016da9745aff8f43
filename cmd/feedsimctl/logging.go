package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// newLogger builds the CLI logger. "none" keeps command output clean, which
// is the default for scripted use.
func newLogger(mode string) (*zap.Logger, error) {
	switch strings.ToLower(mode) {
	case "", "none":
		return zap.NewNop(), nil
	case "dev", "development":
		return zap.NewDevelopmentConfig().Build()
	case "prod", "production":
		return zap.NewProductionConfig().Build()
	default:
		return nil, fmt.Errorf("unsupported log mode: %s", mode)
	}
}
