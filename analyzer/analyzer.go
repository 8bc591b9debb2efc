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

// Package analyzer resolves surface words to verb analyses using
// the relations materialized by the builder.
//
// The backing store does not guarantee safe concurrent use of a single
// connection so every caller identifies itself by a token and gets
// its own dedicated connection. Connections are created lazily and
// stay open until the caller releases them (or the analyzer is closed).
package analyzer

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"

	"esmorph/database"
	"esmorph/textnorm"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

const (
	CacheNamespace = "verbInfo"
)

var ErrClosed = errors.New("verb analyzer is closed")

// ResultCache is an optional storage of already resolved words.
type ResultCache interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
}

type Analyzer struct {
	db      *sql.DB
	cache   ResultCache
	mu      sync.Mutex
	handles map[string]*sql.Conn
	closed  bool
}

func (a *Analyzer) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// isBrokenHandle tells whether err comes from a connection failure
// of a handle which is still registered for the caller. A handle
// closed by Release (or Close) is not considered broken.
func (a *Analyzer) isBrokenHandle(caller string, conn *sql.Conn, err error) bool {
	if !errors.Is(err, driver.ErrBadConn) && !errors.Is(err, sql.ErrConnDone) {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	curr, ok := a.handles[caller]
	return ok && curr == conn
}

// handle returns the caller's dedicated connection, creating it if needed.
func (a *Analyzer) handle(ctx context.Context, caller string) (*sql.Conn, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	if conn, ok := a.handles[caller]; ok {
		a.mu.Unlock()
		return conn, nil
	}
	a.mu.Unlock()

	// acquiring a connection may block on the pool, so it happens
	// outside of the lock
	conn, err := a.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		conn.Close()
		return nil, ErrClosed
	}
	if curr, ok := a.handles[caller]; ok {
		conn.Close()
		return curr, nil
	}
	a.handles[caller] = conn
	log.Debug().Str("caller", caller).Int("numHandles", len(a.handles)).Msg("created analyzer handle")
	return conn, nil
}

func (a *Analyzer) dropHandle(caller string, conn *sql.Conn) {
	a.mu.Lock()
	if curr, ok := a.handles[caller]; ok && curr == conn {
		delete(a.handles, caller)
	}
	a.mu.Unlock()
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Warn().Err(err).Str("caller", caller).Msg("failed to close broken analyzer handle")
	}
}

// Release closes the caller's handle. Releasing an unknown
// caller is a no-op.
func (a *Analyzer) Release(caller string) error {
	a.mu.Lock()
	conn, ok := a.handles[caller]
	delete(a.handles, caller)
	a.mu.Unlock()
	if !ok {
		return nil
	}
	log.Debug().Str("caller", caller).Msg("released analyzer handle")
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

func (a *Analyzer) NumHandles() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.handles)
}

// Close releases all the handles. The underlying *sql.DB is not
// closed as it is owned by whoever created the analyzer.
func (a *Analyzer) Close() error {
	a.mu.Lock()
	handles := a.handles
	a.handles = make(map[string]*sql.Conn)
	a.closed = true
	a.mu.Unlock()
	var ans error
	for caller, conn := range handles {
		if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Warn().Err(err).Str("caller", caller).Msg("failed to close analyzer handle")
			ans = errors.Join(ans, err)
		}
	}
	return ans
}

func lookup(ctx context.Context, conn *sql.Conn, key string) ([]VerbalForm, error) {
	personal, err := database.SelectPersonal(ctx, conn, key)
	if err != nil {
		return nil, err
	}
	if len(personal) > 0 {
		ans := make([]VerbalForm, len(personal))
		for i, row := range personal {
			ans[i] = personalForm(row)
		}
		return ans, nil
	}
	nonPersonal, err := database.SelectNonPersonal(ctx, conn, key)
	if err != nil {
		return nil, err
	}
	ans := make([]VerbalForm, len(nonPersonal))
	for i, row := range nonPersonal {
		ans[i] = nonPersonalForm(row)
	}
	return ans, nil
}

func (a *Analyzer) fromCache(ctx context.Context, key string) ([]VerbalForm, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, found, err := a.cache.Get(ctx, CacheNamespace, key)
	if err != nil {
		log.Warn().Err(err).Str("word", key).Msg("failed to read verb info from cache")
		return nil, false
	}
	if !found {
		return nil, false
	}
	var ans []VerbalForm
	if err := sonic.Unmarshal(data, &ans); err != nil {
		log.Warn().Err(err).Str("word", key).Msg("failed to decode cached verb info")
		return nil, false
	}
	return ans, true
}

func (a *Analyzer) toCache(ctx context.Context, key string, forms []VerbalForm) {
	if a.cache == nil {
		return
	}
	data, err := sonic.Marshal(forms)
	if err != nil {
		log.Warn().Err(err).Str("word", key).Msg("failed to encode verb info for cache")
		return
	}
	if err := a.cache.Set(ctx, CacheNamespace, key, data); err != nil {
		log.Warn().Err(err).Str("word", key).Msg("failed to store verb info in cache")
	}
}

// GetVerbInfo returns all the analyses of word. Personal forms
// take precedence, non-personal forms are searched only if there
// is no personal match. A word which is not a verb produces an empty
// slice and a nil error.
//
// If the caller's handle turns out to be broken, it is replaced
// by a new one and the query is retried once. A query running on
// a handle released in the meantime just fails.
func (a *Analyzer) GetVerbInfo(ctx context.Context, caller, word string) ([]VerbalForm, error) {
	key := textnorm.VerbKey(word)
	if key == "" {
		return []VerbalForm{}, nil
	}
	if a.isClosed() {
		return nil, ErrClosed
	}
	if ans, ok := a.fromCache(ctx, key); ok {
		return ans, nil
	}
	conn, err := a.handle(ctx, caller)
	if err != nil {
		return nil, err
	}
	ans, err := lookup(ctx, conn, key)
	if a.isBrokenHandle(caller, conn, err) {
		log.Warn().Err(err).Str("caller", caller).Msg("analyzer handle broken, acquiring a new one")
		a.dropHandle(caller, conn)
		conn, err = a.handle(ctx, caller)
		if err != nil {
			return nil, err
		}
		ans, err = lookup(ctx, conn, key)
	}
	if err != nil {
		return nil, err
	}
	a.toCache(ctx, key, ans)
	return ans, nil
}

func (a *Analyzer) IsVerb(ctx context.Context, caller, word string) (bool, error) {
	forms, err := a.GetVerbInfo(ctx, caller, word)
	if err != nil {
		return false, err
	}
	return len(forms) > 0, nil
}

// NewAnalyzer creates an analyzer reading from db. The cache
// may be nil.
func NewAnalyzer(db *sql.DB, cache ResultCache) *Analyzer {
	return &Analyzer{
		db:      db,
		cache:   cache,
		handles: make(map[string]*sql.Conn),
	}
}
