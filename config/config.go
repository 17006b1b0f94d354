// Package config loads the ~/.nodeflowrc settings file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"nodeflow/camera"
	"nodeflow/theme"
)

// FileName is looked up in the user's home directory.
const FileName = ".nodeflowrc"

type Config struct {
	SaveDirectory string
	ThemePath     string
	MinZoom       float64
	MaxZoom       float64
	LogLevel      slog.Level
	LogFile       string
	CellWidth     int
	CellHeight    int
	Confirmations bool
}

func Default() *Config {
	return &Config{
		MinZoom:       camera.DefaultMinZoom,
		MaxZoom:       camera.DefaultMaxZoom,
		LogLevel:      slog.LevelInfo,
		CellWidth:     8,
		CellHeight:    16,
		Confirmations: true,
	}
}

// Load reads ~/.nodeflowrc. A missing file yields the defaults.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(filepath.Join(homeDir, FileName))
}

// LoadFrom reads key=value lines from path. Blank lines and lines starting
// with # are skipped, and unknown keys are ignored.
func LoadFrom(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	homeDir, _ := os.UserHomeDir()
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := config.set(strings.ToLower(key), value, homeDir); err != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", path, lineNo, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return config, nil
}

func (c *Config) set(key, value, homeDir string) error {
	var err error
	switch key {
	case "savedirectory", "save_directory", "savedir":
		c.SaveDirectory = expandPath(value, homeDir)
	case "theme", "themefile", "theme_file":
		c.ThemePath = expandPath(value, homeDir)
	case "minzoom", "min_zoom":
		c.MinZoom, err = strconv.ParseFloat(value, 64)
	case "maxzoom", "max_zoom":
		c.MaxZoom, err = strconv.ParseFloat(value, 64)
	case "loglevel", "log_level":
		err = c.LogLevel.UnmarshalText([]byte(value))
	case "logfile", "log_file":
		c.LogFile = expandPath(value, homeDir)
	case "cellwidth", "cell_width":
		c.CellWidth, err = strconv.Atoi(value)
	case "cellheight", "cell_height":
		c.CellHeight, err = strconv.Atoi(value)
	case "confirmations", "confirm":
		c.Confirmations = strings.ToLower(value) == "true"
	}
	return err
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// Validate checks the zoom range and terminal cell size.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MinZoom, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.MaxZoom, validation.Required, validation.Min(c.MinZoom)),
		validation.Field(&c.CellWidth, validation.Required, validation.Min(1)),
		validation.Field(&c.CellHeight, validation.Required, validation.Min(1)),
	)
}

// Camera returns a camera bounded by the configured zoom range.
func (c *Config) Camera() *camera.Camera {
	cam := camera.New()
	cam.MinZoom, cam.MaxZoom = c.MinZoom, c.MaxZoom
	return cam
}

// Theme loads the configured theme file over the default theme.
func (c *Config) Theme(logger *slog.Logger) (theme.Theme, error) {
	if c.ThemePath == "" {
		return theme.Default(), nil
	}
	return theme.LoadFile(c.ThemePath, logger)
}

// GetSavePath places filename in the save directory, creating it if needed.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
