package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

// NewLogger builds the production logger shared by every component.
func NewLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}
