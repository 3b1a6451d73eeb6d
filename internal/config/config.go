package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/mitchellh/mapstructure"
)

const (
	OrderGiven  = "given"
	OrderFewest = "fewest"
)

var validOrders = []string{OrderGiven, OrderFewest}

// Config holds the program parameters. Every field can be set from config.json
// and overridden by command-line flags.
type Config struct {
	DataFile  string `mapstructure:"dataFile"`
	Delimiter string `mapstructure:"delimiter"`
	Workers   int    `mapstructure:"workers"`
	Order     string `mapstructure:"order"`
	Days      uint64 `mapstructure:"days"`
	Periods   uint64 `mapstructure:"periods"`
	Verbose   bool   `mapstructure:"verbose"`
}

func Default() Config {
	return Config{
		DataFile:  "data.csv",
		Delimiter: ",",
		Workers:   0,
		Order:     OrderGiven,
		Days:      5,
		Periods:   12,
		Verbose:   false,
	}
}

// Load reads the JSON file at path on top of the defaults
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}
	return Parse(bytes)
}

// LoadOptional behaves like Load but returns the defaults when path does not exist
func LoadOptional(path string) (Config, error) {
	config, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// Parse decodes a JSON document on top of the defaults. Unknown keys are
// rejected; values are not validated, callers run Validate once every override
// is applied.
func Parse(bytes []byte) (Config, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}

	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (config Config) Validate() error {
	if config.DataFile == "" {
		return fmt.Errorf("a data file must be specified")
	} else if utf8.RuneCountInString(config.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character: %q", config.Delimiter)
	} else if r := config.DelimiterRune(); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("%q cannot be used as delimiter", config.Delimiter)
	} else if config.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %v", config.Workers)
	} else if !slices.Contains(validOrders, config.Order) {
		return fmt.Errorf("%v is not a valid order, allowed values are %v", config.Order, validOrders)
	}
	_, err := config.Indexer()
	return err
}

func (config Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(config.Delimiter)
	return r
}

// Indexer returns the slot indexer of the configured week
func (config Config) Indexer() (model.SlotIndexer, error) {
	return model.NewSlotIndexer(config.Days, config.Periods)
}
