package api

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"
)

const envPrefix = "ESCD"

// ConfigReader reads the dashboard config from file
type ConfigReader interface {
	ReadConfigFromFile(string) (*APIConfig, error)
}

type configReaderImpl struct {
	environ func() []string
}

// NewConfigReader returns a new api.ConfigReader
func NewConfigReader() ConfigReader {
	return &configReaderImpl{
		environ: os.Environ,
	}
}

// ReadConfigFromFile reads the configuration from a yaml file; a missing file results in the default configuration
func (h *configReaderImpl) ReadConfigFromFile(configPath string) (config *APIConfig, err error) {

	config = &APIConfig{}

	if configPath != "" {
		log.Info().Msgf("Reading %v file...", configPath)

		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
			log.Warn().Msgf("Config file %v does not exist, using defaults", configPath)
		case err != nil:
			return nil, errors.Wrapf(err, "Failed reading config file %v", configPath)
		default:
			// unmarshal into structs
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, errors.Wrapf(err, "Failed unmarshalling config file %v", configPath)
			}
		}
	}

	// override values from envvars
	err = OverrideFromEnv(config, envPrefix, h.environ())
	if err != nil {
		return nil, errors.Wrap(err, "Failed overriding config from environment variables")
	}

	// fill in all the defaults for empty values
	config.SetDefaults()

	// validate the config
	err = config.Validate()
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		log.Info().Msgf("Finished reading %v file successfully", configPath)
	}

	return config, nil
}
