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
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"esmorph/analyzer"
	"esmorph/builder"
	"esmorph/cnf"
	"esmorph/engine"
	"esmorph/flexion"
	"esmorph/grammar"
	"esmorph/lemma"
	"esmorph/rdb"
	"esmorph/resources"
)

const (
	redisConnectionTestTimeout = 10 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		if word := ctx.Param("word"); word != "" {
			logging.AddLogEvent(ctx, "word", word)
		}
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currOrigin := getRequestOrigin(ctx)
		if currOrigin != "" && collections.SliceContains(conf.CorsAllowedOrigins, currOrigin) {
			ctx.Writer.Header().Set("Access-Control-Allow-Origin", currOrigin)
			ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			ctx.Writer.Header().Set(
				"Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
			)
			ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		}
		if ctx.Request.Method == "OPTIONS" {
			ctx.AbortWithStatus(204)
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

// morphology holds all the read-only structures loaded
// from the resource files
type morphology struct {
	fsys      fs.FS
	flexioner *flexion.Flexioner
	mapping   *grammar.Mapping
	verbs     []string
}

func loadMorphology(conf *cnf.Conf) (*morphology, error) {
	fsys := resources.Open(conf.ResourcesDir)
	flx, err := flexion.NewFlexioner(fsys, conf.StrictModels)
	if err != nil {
		return nil, fmt.Errorf("failed to load conjugation models: %w", err)
	}
	mapping, err := grammar.LoadMapping(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load grammar mapping: %w", err)
	}
	verbs, err := resources.ReadVerbList(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load verb list: %w", err)
	}
	return &morphology{
		fsys:      fsys,
		flexioner: flx,
		mapping:   mapping,
		verbs:     verbs,
	}, nil
}

func loadConf(path string) *cnf.Conf {
	var conf *cnf.Conf
	if path == "" {
		conf = cnf.DefaultConf()

	} else {
		var err error
		conf, err = cnf.LoadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	return conf
}

func openDB(conf *cnf.Conf) *gorm.DB {
	db, err := engine.Open(conf.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open verb database")
	}
	return db
}

func runBuild(conf *cnf.Conf) {
	morph, err := loadMorphology(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build verb database")
		return
	}
	db := openDB(conf)
	defer engine.Close(db)
	bld, err := builder.NewBuilder(db, morph.flexioner, morph.mapping, conf.Build.BatchSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build verb database")
		return
	}
	t0 := time.Now()
	stats, err := bld.Run(context.Background(), morph.verbs, conf.Build.Recreate)
	if err != nil {
		log.Fatal().Err(err).Int("builtVerbs", stats.Verbs).Msg("failed to build verb database")
		return
	}
	log.Info().
		Int("verbs", stats.Verbs).
		Int("rows", stats.TotalRows()).
		Float64("procTimeSecs", time.Since(t0).Seconds()).
		Msg("verb database ready")
}

func runExportNormDict(conf *cnf.Conf, outputPath string) {
	dict, err := lemma.NewDictionaryLemmatizer(resources.Open(conf.ResourcesDir), conf.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load lemma dictionary")
		return
	}
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create output file")
			return
		}
		defer f.Close()
		w = f
	}
	if err := dict.WriteNormalized(w); err != nil {
		log.Fatal().Err(err).Msg("failed to export normalized dictionary")
	}
}

func runFlushCache(conf *cnf.Conf) {
	if !conf.Redis.IsConfigured() {
		log.Fatal().Msg("redis not configured, nothing to flush")
		return
	}
	radapter := rdb.NewAdapter(conf.Redis)
	defer radapter.Close()
	if _, err := radapter.Flush(context.Background(), analyzer.CacheNamespace); err != nil {
		log.Fatal().Err(err).Msg("failed to flush cache")
	}
}

func main() {
	version := VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	outputPath := flag.String("output", "", "Output file for export-norm-dict (stdout by default)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ESMORPH - Spanish verb forms and lemmatization service\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] server [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] build [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] export-norm-dict [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] flush-cache [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("esmorph %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	}
	conf := loadConf(flag.Arg(1))
	if err := cnf.ValidateAndDefaults(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
		return
	}
	logging.SetupLogging(conf.Logging)
	if action == "test" {
		if _, err := loadMorphology(conf); err != nil {
			log.Fatal().Err(err).Msg("invalid resources")
			return
		}
		log.Info().Msg("config OK")
		return
	}

	log.Info().
		Str("action", action).
		Str("confPath", conf.GetSourcePath()).
		Msg("Starting ESMorph")

	switch action {
	case "server":
		runApiServer(conf, version)
	case "build":
		runBuild(conf)
	case "export-norm-dict":
		runExportNormDict(conf, *outputPath)
	case "flush-cache":
		runFlushCache(conf)
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
