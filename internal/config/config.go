// Package config provides configuration helpers for queuewatch commands.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/queuewatch/go-queuewatch/pkg/region"
)

// Defaults for the pipeline commands.
const (
	DefaultDashboardPort = "8080"
	DefaultModelPath     = "models/yolo11n.onnx"
)

// Env returns the value of an environment variable, falling back to
// def when unset.
func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt returns an integer environment variable or def.
func EnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// EnvDuration returns a duration environment variable or def.
// Accepts Go duration syntax ("5s", "1500ms").
func EnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// regionFile is the on-disk region format written by cmd/region-select.
type regionFile struct {
	Points []region.Point `json:"points"`
}

// LoadRegion reads a region polygon from a JSON file produced by the
// region selection tool.
func LoadRegion(path string) (*region.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read region file: %w", err)
	}

	var rf regionFile
	if err := json.Unmarshal(data, &rf); err != nil {
		// Also accept a bare point array.
		if arrErr := json.Unmarshal(data, &rf.Points); arrErr != nil {
			return nil, fmt.Errorf("config: parse region file %s: %w", path, err)
		}
	}
	return region.NewRegion(rf.Points)
}

// SaveRegion writes a region point list in the format LoadRegion reads.
func SaveRegion(path string, points []region.Point) error {
	data, err := json.MarshalIndent(regionFile{Points: points}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
