// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
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

package rdb

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPort      = 6379
	DefaultKeyPrefix = "esmorph"
	DefaultTTL       = time.Hour
)

type Conf struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	DB        int    `json:"db"`
	Password  string `json:"password"`
	KeyPrefix string `json:"keyPrefix"`
	TTLSecs   int    `json:"ttlSecs"`
}

// IsConfigured tells whether a Redis server has been specified.
// Caching is disabled otherwise.
func (conf *Conf) IsConfigured() bool {
	return conf != nil && conf.Host != ""
}

func (conf *Conf) TTL() time.Duration {
	return time.Duration(conf.TTLSecs) * time.Second
}

func (conf *Conf) ValidateAndDefaults() error {
	if !conf.IsConfigured() {
		return nil
	}
	if conf.Port == 0 {
		conf.Port = DefaultPort
		log.Warn().Int("port", conf.Port).Msg("redis port not specified, using default")
	}
	if conf.Port < 0 || conf.Port > 65535 {
		return fmt.Errorf("invalid redis port %d", conf.Port)
	}
	if conf.DB < 0 {
		return fmt.Errorf("invalid redis database %d", conf.DB)
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = DefaultKeyPrefix
		log.Warn().Str("keyPrefix", conf.KeyPrefix).Msg("redis key prefix not specified, using default")
	}
	if conf.TTLSecs == 0 {
		conf.TTLSecs = int(DefaultTTL.Seconds())
		log.Warn().Int("ttlSecs", conf.TTLSecs).Msg("redis cache TTL not specified, using default")

	} else if conf.TTLSecs < 0 {
		return fmt.Errorf("invalid redis cache TTL %d", conf.TTLSecs)
	}
	return nil
}

// Adapter is a Redis-backed key-value cache. Values are opaque
// byte slices, entries expire after the configured TTL.
type Adapter struct {
	c         *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func (a *Adapter) mkKey(namespace, key string) string {
	hashKey := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s:%s:%s", a.keyPrefix, namespace, hex.EncodeToString(hashKey[:]))
}

// Get returns a cached value. A missing entry is reported
// by the second return value, not by an error.
func (a *Adapter) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	cmd := a.c.Get(ctx, a.mkKey(namespace, key))
	if errors.Is(cmd.Err(), redis.Nil) {
		return nil, false, nil

	} else if cmd.Err() != nil {
		return nil, false, fmt.Errorf("failed to get cached value: %w", cmd.Err())
	}
	data, err := cmd.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached value: %w", err)
	}
	return data, true, nil
}

func (a *Adapter) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := a.c.Set(ctx, a.mkKey(namespace, key), value, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached value: %w", err)
	}
	return nil
}

// Flush removes all the entries stored under the adapter's key prefix
// within namespace.
func (a *Adapter) Flush(ctx context.Context, namespace string) (int, error) {
	var cursor uint64
	var total int
	pattern := strings.Join([]string{a.keyPrefix, namespace, "*"}, ":")
	for {
		keys, next, err := a.c.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return total, fmt.Errorf("failed to flush cache: %w", err)
		}
		if len(keys) > 0 {
			if err := a.c.Del(ctx, keys...).Err(); err != nil {
				return total, fmt.Errorf("failed to flush cache: %w", err)
			}
			total += len(keys)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	log.Info().Str("namespace", namespace).Int("removed", total).Msg("flushed cache")
	return total, nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.c.Ping(ctx).Err()
}

func (a *Adapter) Close() error {
	return a.c.Close()
}

// NewAdapter creates a new Adapter. The conf is expected to be
// validated via Conf.ValidateAndDefaults.
func NewAdapter(conf *Conf) *Adapter {
	ttl := conf.TTL()
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	prefix := conf.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		keyPrefix: prefix,
		ttl:       ttl,
	}
}
