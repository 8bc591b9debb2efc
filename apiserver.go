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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"esmorph/analyzer"
	"esmorph/cnf"
	"esmorph/database"
	"esmorph/engine"
	"esmorph/handlers"
	"esmorph/lemma"
	"esmorph/rdb"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type apiServer struct {
	server  *http.Server
	conf    *cnf.Conf
	actions *handlers.Actions
	version VersionInfo
}

func mkServerInfo(version VersionInfo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(
			ctx.Writer,
			map[string]any{
				"name":    "ESMorph",
				"version": version,
			},
		)
	}
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(handlers.RecoverPanic))
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	engine.GET("/", mkServerInfo(api.version))

	analysis := engine.Group("")
	analysis.Use(api.actions.CallerScope())

	analysis.GET(
		"/verb-info/:word", api.actions.VerbInfo)

	analysis.GET(
		"/is-verb/:word", api.actions.IsVerb)

	analysis.GET(
		"/lemmas/:word", api.actions.Lemmas)

	analysis.POST(
		"/lemmatize-text", api.actions.LemmatizeText)

	engine.GET(
		"/verb-forms/:infinitive", api.actions.VerbForms)

	engine.GET(
		"/dict-lemma/:word", api.actions.DictLemma)

	engine.POST(
		"/pos-lemmas", api.actions.PosLemmas)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (s *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down ESMorph HTTP API server")
	return s.server.Shutdown(ctx)
}

func runApiServer(
	conf *cnf.Conf,
	version VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	morph, err := loadMorphology(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
		return
	}
	dict, err := lemma.NewDictionaryLemmatizer(morph.fsys, conf.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
		return
	}

	db := openDB(conf)
	defer engine.Close(db)
	if !database.SchemaExists(db) {
		log.Fatal().Msg("verb database not found, please run the `build` action first")
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
		return
	}

	var cache analyzer.ResultCache
	if conf.Redis.IsConfigured() {
		radapter := rdb.NewAdapter(conf.Redis)
		defer radapter.Close()
		pingCtx, cancel := context.WithTimeout(ctx, redisConnectionTestTimeout)
		err := radapter.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		cache = radapter
	}
	verbAnalyzer := analyzer.NewAnalyzer(sqlDB, cache)
	defer verbAnalyzer.Close()

	server := &apiServer{
		conf: conf,
		actions: handlers.NewActions(
			morph.flexioner,
			morph.mapping,
			verbAnalyzer,
			dict,
			lemma.NewSpanishPosLemmatizer(dict, morph.verbs),
		),
		version: version,
	}

	services := []service{server}
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}
