package config

const (
	defaultRenderWorkers = 4
	defaultFrameDuration = 41 // ~24fps
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultGeometryDir   = "geo"
	defaultTextureDir    = "tex"
	defaultMovieDir      = "afp"
	defaultDescrambleDir = "afp/bsi"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Render: Render{
			Workers:       defaultRenderWorkers,
			FrameDuration: defaultFrameDuration,
		},
		Containers: Containers{
			GeometryDir:   defaultGeometryDir,
			TextureDir:    defaultTextureDir,
			MovieDir:      defaultMovieDir,
			DescrambleDir: defaultDescrambleDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// normalize fills zero values with defaults and trims string fields.
func (c *Config) normalize() {
	if c.Render.Workers == 0 {
		c.Render.Workers = defaultRenderWorkers
	}
	if c.Render.FrameDuration == 0 {
		c.Render.FrameDuration = defaultFrameDuration
	}
	if c.Containers.GeometryDir == "" {
		c.Containers.GeometryDir = defaultGeometryDir
	}
	if c.Containers.TextureDir == "" {
		c.Containers.TextureDir = defaultTextureDir
	}
	if c.Containers.MovieDir == "" {
		c.Containers.MovieDir = defaultMovieDir
	}
	if c.Containers.DescrambleDir == "" {
		c.Containers.DescrambleDir = defaultDescrambleDir
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
