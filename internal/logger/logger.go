// Package logger provides structured logging with zap.
package logger

import "go.uber.org/zap"

// New creates a new zap.Logger depending on the environment. Every entry
// carries the service name so booking logs are filterable when the process
// shares a log stream with other site backends.
func New(env string) *zap.Logger {
	var log *zap.Logger
	if env == "production" {
		log, _ = zap.NewProduction()
	} else {
		log, _ = zap.NewDevelopment()
	}
	return log.With(zap.String("service", "booking-api"))
}
