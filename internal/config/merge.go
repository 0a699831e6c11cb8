package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keySource     = "source"
	keyPagination = "pagination"
	keyHighlight  = "highlight"
	keyCache      = "cache"
	keyLogging    = "logging"
	keyScholar    = "scholar"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keySource:     true,
	keyPagination: true,
	keyHighlight:  true,
	keyCache:      true,
	keyLogging:    true,
	keyScholar:    true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes node into a fresh zero value of the section's type and
// replaces the target field with it.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keySource:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Source = v
	case keyPagination:
		var v PaginationConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Pagination = v
	case keyHighlight:
		var v HighlightConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Highlight = v
	case keyCache:
		var v CacheConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyScholar:
		var v ScholarConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Scholar = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
