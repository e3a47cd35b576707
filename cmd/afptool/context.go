package main

import (
	"log/slog"
	"strings"
	"sync"

	"afptool/internal/config"
	"afptool/internal/library"
	"afptool/internal/logging"
	"afptool/internal/pipeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// newNormalizer wires the configured flat-family directory layout. Movie-clip
// parsing inside flat archives needs the external format parser, so no clip
// parser hook is registered here.
func (c *commandContext) newNormalizer() (*library.Normalizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	dirs := library.Dirs{
		Geometry:   cfg.Containers.GeometryDir,
		Texture:    cfg.Containers.TextureDir,
		Movie:      cfg.Containers.MovieDir,
		Descramble: cfg.Containers.DescrambleDir,
	}
	return library.NewNormalizer(dirs, nil, logger), nil
}

func (c *commandContext) newLoader() (*pipeline.Loader, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return pipeline.NewLoader(logger, containerOpeners()...), nil
}
