package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Render.Workers < 1 {
		return fmt.Errorf("render.workers must be at least 1, got %d", c.Render.Workers)
	}
	if c.Render.FrameDuration < 1 {
		return fmt.Errorf("render.frame_duration must be at least 1ms, got %d", c.Render.FrameDuration)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	for _, dir := range []struct {
		key   string
		value string
	}{
		{"containers.geometry_dir", c.Containers.GeometryDir},
		{"containers.texture_dir", c.Containers.TextureDir},
		{"containers.movie_dir", c.Containers.MovieDir},
		{"containers.descramble_dir", c.Containers.DescrambleDir},
	} {
		if strings.HasPrefix(dir.value, "/") || strings.HasSuffix(dir.value, "/") {
			return fmt.Errorf("%s must be a bare prefix without leading or trailing slashes, got %q", dir.key, dir.value)
		}
	}
	return nil
}
