package config

import (
	"go.uber.org/zap"
)

// InitLogger builds the process logger: development output unless the app
// runs in production.
func InitLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
