package api

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// WatchConfigFile re-reads the config file whenever it changes and hands the new config to onChange,
// until ctx is cancelled; invalid configs are logged and ignored
func WatchConfigFile(ctx context.Context, configReader ConfigReader, configPath string, onChange func(*APIConfig)) error {

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "Failed creating config file watcher")
	}

	// watch the directory, configmap mounts replace the file through a symlink swap
	err = watcher.Add(filepath.Dir(configPath))
	if err != nil {
		watcher.Close()
		return errors.Wrapf(err, "Failed watching directory of config file %v", configPath)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(configPath) && !event.Has(fsnotify.Create) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				config, err := configReader.ReadConfigFromFile(configPath)
				if err != nil {
					log.Warn().Err(err).Msgf("Ignoring change to config file %v", configPath)
					continue
				}

				log.Info().Msgf("Config file %v changed, applying new config", configPath)
				onChange(config)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("Config file watcher failed")
			}
		}
	}()

	return nil
}
