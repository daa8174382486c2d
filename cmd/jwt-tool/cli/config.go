package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	jwt "github.com/krajcik/jwtcodec"
	"gopkg.in/yaml.v3"
)

// Config provides defaults for flags that were not specified
type Config struct {
	// Alg is the signing algorithm for sign
	Alg string `yaml:"alg"`
	// KeyFile is the PEM key file used when neither --key nor --secret is set
	KeyFile string `yaml:"key_file"`
	// Algorithms is the allow-list for verify
	Algorithms []string `yaml:"algorithms"`
}

// LoadConfig loads and validates a YAML config file
func LoadConfig(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to read config %q", file)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.WithMessagef(err, "unable to parse config %q", file)
	}

	if cfg.Alg != "" {
		if _, err := jwt.ParseAlgorithm(cfg.Alg); err != nil {
			return nil, errors.WithMessage(err, "config alg")
		}
	}
	if _, err := parseAlgorithms(cfg.Algorithms); err != nil {
		return nil, errors.WithMessage(err, "config algorithms")
	}
	return cfg, nil
}

func parseAlgorithms(names []string) ([]jwt.Algorithm, error) {
	algs := make([]jwt.Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := jwt.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algs = append(algs, alg)
	}
	return algs, nil
}
