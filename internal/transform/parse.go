package transform

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"afptool/internal/pipeline"
)

// ParseRatio parses a colon-separated aspect ratio such as "16:9" or "4:3".
func ParseRatio(value string) (Ratio, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return Ratio{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse ratio",
			fmt.Sprintf("%q is not a ratio such as 16:9 or 4:3", value), nil)
	}
	terms := make([]float64, 2)
	for i, part := range parts {
		term, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Ratio{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse ratio", value, err)
		}
		terms[i] = term
	}
	if terms[0] <= 0 || terms[1] <= 0 {
		return Ratio{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse ratio",
			"ratio must only include positive numbers", nil)
	}
	return Ratio{X: terms[0], Y: terms[1]}, nil
}

// ParseColor parses a comma-separated RGB or RGBA color with 0-255
// components. A missing alpha defaults to 255.
func ParseColor(value string) (color.NRGBA, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse color",
			fmt.Sprintf("%q is not a comma-separated RGB or RGBA value", value), nil)
	}
	channels := [4]uint8{0, 0, 0, 255}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return color.NRGBA{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse color", value, err)
		}
		if n < 0 || n > 255 {
			return color.NRGBA{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse color",
				"color values should be between 0 and 255", nil)
		}
		channels[i] = uint8(n)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// ParseDepths parses a comma-separated list of depth planes.
func ParseDepths(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	depths := make([]int, 0, len(parts))
	for _, part := range parts {
		depth, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "parse depths", value, err)
		}
		depths = append(depths, depth)
	}
	return depths, nil
}
