package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set and returns DefaultConfig otherwise
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if err := validateChart(&cfg.Chart); err != nil {
		return fmt.Errorf("chart validation failed: %w", err)
	}

	if err := validateConvergence(&cfg.Convergence); err != nil {
		return fmt.Errorf("convergence validation failed: %w", err)
	}

	return nil
}

// validateChart validates the figure settings
func validateChart(c *Chart) error {
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return fmt.Errorf("width_in and height_in must be positive, got %gx%g", c.WidthIn, c.HeightIn)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %g", c.DPI)
	}
	// go-chart allocates the whole raster up front
	if c.WidthPx() > 20000 || c.HeightPx() > 20000 {
		return fmt.Errorf("figure too large: %dx%d pixels", c.WidthPx(), c.HeightPx())
	}
	if !isHexColor(c.LineColor) {
		return fmt.Errorf("invalid line_color: %q (must be #rrggbb)", c.LineColor)
	}
	if c.LineWidthPt <= 0 {
		return fmt.Errorf("line_width_pt must be positive, got %g", c.LineWidthPt)
	}
	if c.LineAlpha <= 0 || c.LineAlpha > 1 {
		return fmt.Errorf("line_alpha must be between 0 and 1, got %g", c.LineAlpha)
	}
	if c.TitleFontSize <= 0 || c.LabelFontSize <= 0 || c.AnnotationFontSize <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	return nil
}

// validateConvergence validates stall detection settings
func validateConvergence(c *Convergence) error {
	validStrategies := map[string]bool{
		"combined":              true,
		"no_improvement":        true,
		"plateau":               true,
		"improvement_threshold": true,
		"variance":              true,
		"none":                  true,
	}
	if !validStrategies[c.Strategy] {
		return fmt.Errorf("invalid strategy: %s", c.Strategy)
	}
	if c.NoImprovementSteps <= 0 {
		return fmt.Errorf("no_improvement_steps must be positive, got %d", c.NoImprovementSteps)
	}
	if c.PlateauSteps <= 0 {
		return fmt.Errorf("plateau_steps must be positive, got %d", c.PlateauSteps)
	}
	if c.MinSteps < 0 {
		return fmt.Errorf("min_steps cannot be negative, got %d", c.MinSteps)
	}
	if c.ImprovementThreshold < 0 {
		return fmt.Errorf("improvement_threshold cannot be negative, got %g", c.ImprovementThreshold)
	}
	if c.ScoreTolerance < 0 {
		return fmt.Errorf("score_tolerance cannot be negative, got %g", c.ScoreTolerance)
	}
	return nil
}

func isHexColor(s string) bool {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
