package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"go.idset/internal/config"
	"go.idset/internal/ident"
	"go.idset/internal/logger"
	"go.idset/internal/storage"
)

func Open(name string, cfg *config.Config) (*Database, error) {
	logPath := filepath.Join(cfg.LogDir, name+".log")

	logFile, lErr := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if lErr != nil {
		return nil, fmt.Errorf("failed to open log file: %w", lErr)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		logFile.Close()
		return nil, err
	}
	log := logger.New(logFile, level)

	var cache *storage.NodeCache
	if cfg.Cache.Enabled {
		cache, err = storage.NewNodeCache(storage.CacheOptions{
			MaxNodes: cfg.Cache.MaxNodes,
			Counters: cfg.Cache.Counters,
		})
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("failed to create node cache: %w", err)
		}
	}

	gen, gErr := ident.NewGenerator(cfg.GeneratorNode)
	if gErr != nil {
		cache.Close()
		logFile.Close()
		return nil, gErr
	}

	set := storage.NewIDSet(cache, log)
	log.Infof("Open: %s (cache=%t, hash_names=%t)", name, cfg.Cache.Enabled, cfg.HashNames)

	return &Database{
		name:    name,
		engine:  NewEngine(set, gen, log, cfg.HashNames),
		set:     set,
		cache:   cache,
		logFile: logFile,
	}, nil
}
