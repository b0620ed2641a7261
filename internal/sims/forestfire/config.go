package forestfire

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// MaxDimension bounds Width and Height so a single grid stays within a few
// tens of megabytes.
const MaxDimension = 4096

// Config controls the forest fire dimensions and seeding.
type Config struct {
	Width           int     `mapstructure:"w" yaml:"width"`
	Height          int     `mapstructure:"h" yaml:"height"`
	TreeProbability float64 `mapstructure:"tree_probability" yaml:"tree_probability"`
	Seed            int64   `mapstructure:"seed" yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:           256,
		Height:          256,
		TreeProbability: 0.5,
		Seed:            1337,
	}
}

// Validate checks the dimensions and tree probability.
func (c Config) Validate() error {
	if !validDimension(c.Width) || !validDimension(c.Height) {
		return fmt.Errorf("grid %dx%d (max %d): %w", c.Height, c.Width, MaxDimension, ErrInvalidParameter)
	}
	if !(c.TreeProbability >= 0 && c.TreeProbability <= 1) {
		return fmt.Errorf("tree probability %v: %w", c.TreeProbability, ErrInvalidParameter)
	}
	return nil
}

// FromMap overlays flag-style key/value pairs (w, h, tree_probability, seed)
// onto the defaults. Unknown keys and unparsable values are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if len(cfg) == 0 {
		return c, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &c,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %v: %w", err, ErrInvalidParameter)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func validDimension(n int) bool { return n > 0 && n <= MaxDimension }
