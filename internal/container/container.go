package container

import (
	"fmt"
	"time"

	"flightdash/adapters/dataset"
	"flightdash/app"
	"flightdash/internal"
	"flightdash/internal/config"
	"flightdash/internal/errors"
	"flightdash/internal/portfolio"
)

// Container holds all application dependencies. Everything is built once
// at startup and shared read-only by every request.
type Container struct {
	Config  *config.Config
	Logger  *internal.Logger
	Started time.Time

	// Data
	Store *dataset.Store

	// Services
	Analysis  *app.AnalysisService
	Inference *app.InferenceService

	// Static content
	Profile *portfolio.Profile
}

// New loads the dataset and profile and wires the services. A dataset
// failure is returned as a LoadError; callers treat it as fatal.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Started: time.Now(),
	}

	store, err := dataset.NewStore(cfg.Data.File)
	if err != nil {
		return nil, err
	}
	c.Store = store

	profile, err := portfolio.Load(cfg.Portfolio.ProfileFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load profile %s", cfg.Portfolio.ProfileFile)
	}
	c.Profile = profile

	c.Analysis = app.NewAnalysisService(store)
	c.Inference = app.NewInferenceService(store, cfg.Analysis.DefaultConfidence)

	logger.With("Container").Info("dataset %s: %d rows, %d columns", store.Path(), store.Table().Len(), len(store.Table().Columns))
	return c, nil
}
