package logging

import (
	"go.uber.org/zap"
)

// New builds a file-backed logger. The wall owns the terminal, so nothing may
// log to stdout while it runs. An empty path disables logging entirely.
func New(path string) (*zap.SugaredLogger, error) {
	if path == "" {
		return zap.NewNop().Sugar(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// NewConsole builds a development logger for commands that own stdout
// themselves, like the record server.
func NewConsole() (*zap.SugaredLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
