package logging

import (
	"os"

	"github.com/DedS3t/monopoly-server/platform/config"
	log "github.com/sirupsen/logrus"
)

// Init configures the global logrus logger.
func Init(cfg config.Config) {
	log.SetOutput(os.Stdout)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
