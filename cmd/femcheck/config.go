package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// femcheck config.toml key mapping to the verification run settings.
type fileConfig struct {
	Dimensions       []int   `toml:"dimensions"`
	QuadraturePoints int     `toml:"quadrature_points"`
	MatrixTolerance  float64 `toml:"matrix_tolerance"`
	RHSTolerance     float64 `toml:"rhs_tolerance"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		Dimensions:       []int{2, 3},
		QuadraturePoints: 3,
		MatrixTolerance:  1e-13,
		RHSTolerance:     1e-14,
	}
}

// loadConfig overlays a TOML file, when given, onto the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fileConfig{}, fmt.Errorf("femcheck: load config: %w", err)
	}
	for _, key := range meta.Keys() {
		switch key.String() {
		case "dimensions":
			cfg.Dimensions = raw.Dimensions
		case "quadrature_points":
			cfg.QuadraturePoints = raw.QuadraturePoints
		case "matrix_tolerance":
			cfg.MatrixTolerance = raw.MatrixTolerance
		case "rhs_tolerance":
			cfg.RHSTolerance = raw.RHSTolerance
		default:
			return fileConfig{}, fmt.Errorf("femcheck: unknown config key %q", key)
		}
	}
	return cfg, nil
}
