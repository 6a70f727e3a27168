// Package logger provides structured logging with zap.
package logger

import "go.uber.org/zap"

// New creates a zap.Logger suited to the environment.
func New(env string) *zap.Logger {
	if env == "production" {
		l, _ := zap.NewProduction()
		return l
	}
	l, _ := zap.NewDevelopment()
	return l
}
