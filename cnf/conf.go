// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of MQUERY.
//
//  MQUERY is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  MQUERY is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with MQUERY.  If not, see <https://www.gnu.org/licenses/>.

package cnf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"esmorph/builder"
	"esmorph/engine"
	"esmorph/lemma"
	"esmorph/rdb"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltListenAddress          = "localhost"
	dfltListenPort             = 8080
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltLanguage               = "es"
	dfltSQLitePath             = "spanish_verbs.db"
	dfltLogLevel               = "info"
)

type BuildConf struct {
	BatchSize int  `json:"batchSize"`
	Recreate  bool `json:"recreate"`
}

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string              `json:"listenAddress"`
	ListenPort             int                 `json:"listenPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string            `json:"corsAllowedOrigins"`
	Logging                logging.LoggingConf `json:"logging"`

	// ResourcesDir points to a directory with verb_data and data
	// subdirectories. If empty, the embedded resources are used.
	ResourcesDir string `json:"resourcesDir"`

	// Language of the lemma dictionary
	Language string `json:"language"`

	// StrictModels makes a verb listed by more than one irregular
	// model a load error instead of a warning
	StrictModels bool `json:"strictModels"`

	DB    *engine.DBConf `json:"db"`
	Build BuildConf      `json:"build"`
	Redis *rdb.Conf      `json:"redis"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.Logging.Level == "debug"
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if conf.srcPath == "" {
		return ""
	}
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// DefaultConf returns a configuration used when no config
// file is provided. It still has to be validated.
func DefaultConf() *Conf {
	return &Conf{}
}

func LoadConfig(path string) (*Conf, error) {
	if path == "" {
		return nil, errors.New("cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	var conf Conf
	conf.srcPath = path
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	return &conf, nil
}

func validateDB(conf *Conf) error {
	if conf.DB == nil {
		conf.DB = &engine.DBConf{Type: engine.DBTypeSQLite}
		log.Warn().Str("type", conf.DB.Type).Msg("db not specified, using default")
	}
	switch conf.DB.Type {
	case engine.DBTypeSQLite:
		if conf.DB.Path == "" {
			conf.DB.Path = dfltSQLitePath
			log.Warn().Str("path", conf.DB.Path).Msg("db.path not specified, using default")
		}
		dir := filepath.Dir(conf.DB.Path)
		isDir, err := fs.IsDir(dir)
		if err != nil {
			return fmt.Errorf("failed to check db.path directory: %w", err)
		}
		if !isDir {
			return fmt.Errorf("db.path directory %s does not exist", dir)
		}
	case engine.DBTypeMySQL:
		if conf.DB.Host == "" || conf.DB.Name == "" || conf.DB.User == "" {
			return errors.New("db.host, db.name and db.user must be specified for mysql")
		}
	default:
		return fmt.Errorf("unsupported db.type '%s'", conf.DB.Type)
	}
	if conf.DB.PoolSize < 0 {
		return fmt.Errorf("invalid db.poolSize %d", conf.DB.PoolSize)
	}
	return nil
}

// ValidateAndDefaults checks the configuration and fills in
// default values of missing items.
func ValidateAndDefaults(conf *Conf) error {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Str("address", conf.ListenAddress).Msg("listenAddress not specified, using default")
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Int("port", conf.ListenPort).Msg("listenPort not specified, using default")
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.Logging.Level == "" {
		conf.Logging.Level = dfltLogLevel
	}
	if conf.ResourcesDir != "" {
		isDir, err := fs.IsDir(conf.ResourcesDir)
		if err != nil {
			return fmt.Errorf("failed to check resourcesDir: %w", err)
		}
		if !isDir {
			return fmt.Errorf("resourcesDir %s is not a directory", conf.ResourcesDir)
		}
	}
	if conf.Language == "" {
		conf.Language = dfltLanguage
		log.Warn().Str("language", conf.Language).Msg("language not specified, using default")
	}
	if !lemma.IsSupportedLanguage(conf.Language) {
		return fmt.Errorf("%w: %s", lemma.ErrUnsupportedLanguage, conf.Language)
	}
	if err := validateDB(conf); err != nil {
		return err
	}
	if conf.Build.BatchSize == 0 {
		conf.Build.BatchSize = builder.DefaultBatchSize

	} else if conf.Build.BatchSize < 0 {
		return fmt.Errorf("invalid build.batchSize %d", conf.Build.BatchSize)
	}
	if conf.Redis.IsConfigured() {
		if err := conf.Redis.ValidateAndDefaults(); err != nil {
			return err
		}

	} else {
		log.Info().Msg("redis not configured, verb analysis results will not be cached")
	}
	return nil
}
