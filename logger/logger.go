package logger

import (
	"go.uber.org/zap"
)

// Log defaults to a no-op logger so library code can log before Init is
// called, e.g. from tests.
var Log = zap.NewNop().Sugar()

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}
