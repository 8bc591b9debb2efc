// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DBTypeSQLite = "sqlite"
	DBTypeMySQL  = "mysql"

	dfltSQLiteBusyTimeoutMs = 5000
)

type DBConf struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	Host     string `json:"host"`
	Name     string `json:"name"`
	User     string `json:"user"`
	Password string `json:"password"`
	PoolSize int    `json:"poolSize"`
	Debug    bool   `json:"debug"`
}

func mysqlDSN(conf *DBConf) string {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.Host
	mconf.User = conf.User
	mconf.Passwd = conf.Password
	mconf.DBName = conf.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	mconf.Params = map[string]string{"autocommit": "true", "charset": "utf8mb4"}
	return mconf.FormatDSN()
}

func sqliteDSN(conf *DBConf) string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d", conf.Path, dfltSQLiteBusyTimeoutMs)
}

// Open connects the verb database described by conf.
// The returned handle is safe for concurrent use, for
// dedicated per-caller connections use its underlying *sql.DB.
func Open(conf *DBConf) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Type {
	case DBTypeSQLite:
		dialector = sqlite.Open(sqliteDSN(conf))
	case DBTypeMySQL:
		dialector = gormmysql.Open(mysqlDSN(conf))
	default:
		return nil, fmt.Errorf("unsupported database type '%s'", conf.Type)
	}
	logLevel := logger.Silent
	if conf.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", conf.Type, err)
	}
	if conf.PoolSize > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to configure connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(conf.PoolSize)
	}
	return db, nil
}

// Close releases all the connections of db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
