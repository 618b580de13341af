package relgen

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/theherk/viper"
)

// configKeys is the exact, closed option surface. Any top-level key found
// in a config file outside this set fails loading with ConfigInvalid —
// viper itself is lenient about unknown keys, so the check is done by hand
// before Unmarshal.
var configKeys = map[string]bool{
	"seed": true, "locale": true, "count": true, "format": true, "output": true,
	"validate": true, "edge_cases": true, "distributions": true, "tables": true,
}

// FileConfig is the on-disk shape of a relgen config file, decoded via
// theherk/viper (the write-capable fork).
type FileConfig struct {
	Seed          *uint32                  `mapstructure:"seed"`
	Locale        string                   `mapstructure:"locale"`
	Count         int                      `mapstructure:"count"`
	Format        string                   `mapstructure:"format"`
	Output        string                   `mapstructure:"output"`
	Validate      bool                     `mapstructure:"validate"`
	EdgeCases     int                      `mapstructure:"edge_cases"`
	Distributions []FileDistributionSpec   `mapstructure:"distributions"`
	Tables        map[string]FileTableSpec `mapstructure:"tables"`
}

type FileDistributionSpec struct {
	Table   string    `mapstructure:"table"`
	Column  string    `mapstructure:"column"`
	Type    string    `mapstructure:"type"`
	Skew    float64   `mapstructure:"skew"`
	Mean    float64   `mapstructure:"mean"`
	Stddev  float64   `mapstructure:"stddev"`
	Values  []any     `mapstructure:"values"`
	Weights []float64 `mapstructure:"weights"`
}

type FileTableSpec struct {
	Count     *int `mapstructure:"count"`
	EdgeCases *int `mapstructure:"edge_cases"`
}

// LoadConfig reads a YAML or JSON config file at path, rejecting any
// top-level key outside configKeys.
func LoadConfig(path string) (*FileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errConfigInvalid("cannot read config file "+path, err)
	}

	for _, k := range v.AllKeys() {
		top := k
		if idx := indexOfDot(k); idx >= 0 {
			top = k[:idx]
		}
		if !configKeys[top] {
			return nil, errConfigInvalid("unrecognized config key: "+k, nil)
		}
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errConfigInvalid("cannot decode config file "+path, err)
	}
	return &cfg, nil
}

func indexOfDot(s string) int {
	for i, c := range s {
		if c == '.' {
			return i
		}
	}
	return -1
}

// DefaultConfigPath resolves ~/.relgen/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".relgen", "config.yaml"), nil
}

// ToOptions converts a decoded FileConfig into engine Options.
func (c *FileConfig) ToOptions() (Options, error) {
	opts := Options{
		Count:     c.Count,
		Seed:      c.Seed,
		Locale:    Locale(c.Locale),
		EdgeCases: c.EdgeCases,
		Validate:  c.Validate,
	}
	for _, d := range c.Distributions {
		spec := DistributionSpec{
			Table: d.Table, Column: d.Column, Kind: DistributionKind(d.Type),
			Skew: d.Skew, Mean: d.Mean, Stddev: d.Stddev, Values: d.Values, Weights: d.Weights,
		}
		opts.Distributions = append(opts.Distributions, spec)
	}
	if len(c.Tables) > 0 {
		opts.TableOptions = map[string]TableOverride{}
		for name, t := range c.Tables {
			opts.TableOptions[name] = TableOverride{Count: t.Count, EdgeCases: t.EdgeCases}
		}
	}
	return opts, nil
}

// WriteDefaultConfig scaffolds a default config file at path using the
// write-capable viper fork.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.Set("seed", nil)
	v.Set("locale", "en_US")
	v.Set("count", 100)
	v.Set("format", "json")
	v.Set("output", "-")
	v.Set("validate", true)
	v.Set("edge_cases", 5)
	return v.WriteConfigAs(path)
}
