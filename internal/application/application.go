package application

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/eugenenazirov/basetool/internal/config"
)

const (
	// SmokeDebugMessage is emitted at DEBUG level by SmokeTest.
	SmokeDebugMessage = "This is debug"
	// SmokeErrorMessage is emitted at ERROR level by SmokeTest.
	SmokeErrorMessage = "This is error"
)

var (
	// ErrNoLogger is returned by New when no logger is supplied.
	ErrNoLogger = errors.New("logger is required")
	// ErrNoNames is returned by New when no positional argument is supplied.
	ErrNoNames = errors.New("at least one argument name is required")
)

// App encapsulates the tool's bootstrapped state.
type App struct {
	params config.Params
	names  []string
	logger *zap.Logger
}

// New builds an App from the merged parameters and the positional arguments.
func New(params config.Params, names []string, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, ErrNoLogger
	}
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	return &App{
		params: params,
		names:  slices.Clone(names),
		logger: logger,
	}, nil
}

// Run executes the tool. The scaffold only runs the smoke test.
func (a *App) Run() error {
	a.SmokeTest()
	return nil
}

// SmokeTest emits one DEBUG and one ERROR record.
func (a *App) SmokeTest() {
	a.logger.Debug(SmokeDebugMessage)
	a.logger.Error(SmokeErrorMessage)
}

// Names returns a copy of the positional arguments.
func (a *App) Names() []string {
	return slices.Clone(a.names)
}

// Params returns the merged parameters.
func (a *App) Params() config.Params {
	return a.params
}
