// Package di provides dependency injection container
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ssargent/bytekit/pkg/codec"
	"github.com/ssargent/bytekit/pkg/config"
	"github.com/ssargent/bytekit/pkg/logging"
	"github.com/ssargent/bytekit/pkg/metrics"
	"github.com/ssargent/bytekit/pkg/storage"
)

// StoreFactory opens a frame store
type StoreFactory func(dir string, opts storage.FrameStoreOptions) (*storage.FrameStore, error)

// Container holds all the dependencies for the application
type Container struct {
	config       *config.Config
	logger       zerolog.Logger
	codec        *codec.BufferCodec
	registry     *prometheus.Registry
	metrics      *metrics.Metrics
	storeFactory StoreFactory
}

// NewContainer creates a new dependency injection container with the default
// configuration
func NewContainer() *Container {
	c := &Container{
		logger:       logging.Nop(),
		storeFactory: storage.NewFrameStore,
	}
	if err := c.Configure(config.DefaultConfig(), logging.Nop()); err != nil {
		panic(err) // default configuration is always valid
	}
	return c
}

// Configure rebuilds the codec and metrics from cfg
func (c *Container) Configure(cfg *config.Config, logger zerolog.Logger) error {
	cd, err := cfg.NewCodec()
	if err != nil {
		return err
	}

	c.config = cfg
	c.logger = logger
	c.codec = cd
	c.registry = nil
	c.metrics = nil
	if cfg.Metrics.Enabled {
		c.registry = prometheus.NewRegistry()
		c.metrics = metrics.NewMetrics(c.registry)
	}
	return nil
}

// Config returns the active configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger
func (c *Container) Logger() zerolog.Logger {
	return c.logger
}

// Codec returns the configured buffer codec
func (c *Container) Codec() *codec.BufferCodec {
	return c.codec
}

// Metrics returns the metrics, or nil when metrics are disabled
func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

// Gatherer returns the metrics registry, or nil when metrics are disabled
func (c *Container) Gatherer() prometheus.Gatherer {
	if c.registry == nil {
		return nil
	}
	return c.registry
}

// OpenStore opens the frame store in the configured data directory
func (c *Container) OpenStore() (*storage.FrameStore, error) {
	logger := c.logger
	return c.storeFactory(c.config.DataDir, storage.FrameStoreOptions{
		Codec:   c.codec,
		Logger:  &logger,
		Metrics: c.metrics,
	})
}

// SetStoreFactory allows overriding the store factory (for testing)
func (c *Container) SetStoreFactory(factory StoreFactory) {
	c.storeFactory = factory
}
