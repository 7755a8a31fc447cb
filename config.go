// SPDX-License-Identifier: MIT
package canopy

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for a [Tree] & the trees created beneath it.
	Config struct {
		// Logger for [Tree] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Tree functional option type.
	Option func(*Tree)
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Tree] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// WithConfig configures the [Tree] [Config].
//
// Child trees created by the Tree share the same Config.
func WithConfig(cfg *Config) Option {
	return func(t *Tree) {
		if cfg != nil {
			t.cfg = cfg
		}
	}
}

// WithLogger configures a [Tree] with a copy of its current [Config] using logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(t *Tree) {
		cfg := *t.cfg
		cfg.Logger = logger
		t.cfg = &cfg
	}
}

// Config retrieves the [Tree]'s Config.
func (t *Tree) Config() *Config { return t.cfg }

func (c *Config) debugf(format string, args ...interface{}) {
	if !c.Debug || c.Logger == nil {
		return
	}

	c.Logger.Debugf(format, args...)
}
