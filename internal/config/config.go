// Package config loads the move selector configuration from YAML or JSON and builds the selectors it
// describes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type SelectorType string

const (
	ListChange    SelectorType = "listChange"
	ListSwap      SelectorType = "listSwap"
	SubListChange SelectorType = "subListChange"
	SubListSwap   SelectorType = "subListSwap"
	RuinRecreate  SelectorType = "ruinRecreate"
)

var selectorTypes = []SelectorType{ListChange, ListSwap, SubListChange, SubListSwap, RuinRecreate}

type SelectionOrder string

const (
	Original SelectionOrder = "original"
	Random   SelectionOrder = "random"
)

const (
	DefaultMinimumRuinedCount = 5
	DefaultMaximumRuinedCount = 20
)

var ErrInvalidConfig = errors.New("invalid configuration")

type MoveSelectorConfig struct {
	Type                   SelectorType
	SelectionOrder         SelectionOrder
	SelectReversingMoveToo bool
	MinimumSubListSize     int
	MaximumSubListSize     int
	MinimumRuinedCount     int
	MaximumRuinedCount     int
}

type Config struct {
	Seed          uint64
	Starts        int // Independent working copies checked concurrently
	Limit         int // Moves checked per start; 0 means every move of a finite selector
	MoveSelectors []MoveSelectorConfig
}

func (selectorConfig MoveSelectorConfig) isSubList() bool {
	return selectorConfig.Type == SubListChange || selectorConfig.Type == SubListSwap
}

func FromFile(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read configuration file \"%v\": %w", file, err)
	}
	if strings.EqualFold(filepath.Ext(file), ".json") {
		var configJson map[string]any
		if err := json.Unmarshal(bytes, &configJson); err != nil {
			return Config{}, fmt.Errorf("cannot parse configuration file \"%v\": %w", file, err)
		}
		return FromMap(configJson)
	}
	return FromYaml(bytes)
}

func FromYaml(bytes []byte) (Config, error) {
	var configYaml map[string]any
	if err := yaml.Unmarshal(bytes, &configYaml); err != nil {
		return Config{}, fmt.Errorf("cannot parse configuration: %w", err)
	}
	return FromMap(configYaml)
}

// FromMap decodes, completes with defaults and validates a generic configuration tree. Unknown keys are
// rejected.
func FromMap(raw map[string]any) (Config, error) {
	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// WithDefaults fills every setting left at its zero value
func (config Config) WithDefaults() Config {
	if config.Starts == 0 {
		config.Starts = 1
	}
	config.MoveSelectors = lo.Map(config.MoveSelectors, func(selectorConfig MoveSelectorConfig, _ int) MoveSelectorConfig {
		if selectorConfig.SelectionOrder == "" {
			selectorConfig.SelectionOrder = Original
			if selectorConfig.Type == RuinRecreate {
				selectorConfig.SelectionOrder = Random
			}
		}
		if selectorConfig.isSubList() {
			if selectorConfig.MinimumSubListSize == 0 {
				selectorConfig.MinimumSubListSize = 1
			}
			if selectorConfig.MaximumSubListSize == 0 {
				selectorConfig.MaximumSubListSize = math.MaxInt
			}
		}
		if selectorConfig.Type == RuinRecreate {
			if selectorConfig.MinimumRuinedCount == 0 {
				selectorConfig.MinimumRuinedCount = DefaultMinimumRuinedCount
			}
			if selectorConfig.MaximumRuinedCount == 0 {
				selectorConfig.MaximumRuinedCount = max(DefaultMaximumRuinedCount, selectorConfig.MinimumRuinedCount)
			}
		}
		return selectorConfig
	})
	return config
}

// Validate reports every problem of the configuration at once, naming the offending selector and field
func (config Config) Validate() error {
	var problems []error
	report := func(format string, arguments ...any) {
		problems = append(problems, fmt.Errorf("%w: %v", ErrInvalidConfig, fmt.Sprintf(format, arguments...)))
	}

	if config.Starts < 1 {
		report("starts must be at least 1, got %d", config.Starts)
	}
	if config.Limit < 0 {
		report("limit must not be negative, got %d", config.Limit)
	}
	if len(config.MoveSelectors) == 0 {
		report("at least one move selector is required")
	}

	for index, selectorConfig := range config.MoveSelectors {
		name := fmt.Sprintf("moveSelectors[%d]", index)
		if !lo.Contains(selectorTypes, selectorConfig.Type) {
			report("%v.type \"%v\" is not one of %v", name, selectorConfig.Type, selectorTypes)
			continue
		}
		if selectorConfig.SelectionOrder != Original && selectorConfig.SelectionOrder != Random {
			report("%v.selectionOrder \"%v\" must be \"%v\" or \"%v\"", name, selectorConfig.SelectionOrder, Original, Random)
		}
		if selectorConfig.SelectReversingMoveToo && !selectorConfig.isSubList() {
			report("%v.selectReversingMoveToo only applies to sub-list selectors, not %v", name, selectorConfig.Type)
		}

		if selectorConfig.isSubList() {
			if selectorConfig.MinimumSubListSize < 1 {
				report("%v.minimumSubListSize must be at least 1, got %d", name, selectorConfig.MinimumSubListSize)
			}
			if selectorConfig.MaximumSubListSize < selectorConfig.MinimumSubListSize {
				report("%v.maximumSubListSize (%d) must not be lower than minimumSubListSize (%d)", name, selectorConfig.MaximumSubListSize, selectorConfig.MinimumSubListSize)
			}
		} else if selectorConfig.MinimumSubListSize != 0 || selectorConfig.MaximumSubListSize != 0 {
			report("%v sub-list sizes only apply to sub-list selectors, not %v", name, selectorConfig.Type)
		}

		if selectorConfig.Type == RuinRecreate {
			if selectorConfig.SelectionOrder != Random {
				report("%v.selectionOrder of a ruin-and-recreate selector must be \"%v\"", name, Random)
			}
			if selectorConfig.MinimumRuinedCount < 1 {
				report("%v.minimumRuinedCount must be at least 1, got %d", name, selectorConfig.MinimumRuinedCount)
			}
			if selectorConfig.MaximumRuinedCount < selectorConfig.MinimumRuinedCount {
				report("%v.maximumRuinedCount (%d) must not be lower than minimumRuinedCount (%d)", name, selectorConfig.MaximumRuinedCount, selectorConfig.MinimumRuinedCount)
			}
		} else if selectorConfig.MinimumRuinedCount != 0 || selectorConfig.MaximumRuinedCount != 0 {
			report("%v ruined counts only apply to ruin-and-recreate selectors, not %v", name, selectorConfig.Type)
		}
	}

	return errors.Join(problems...)
}
