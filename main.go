// Command japanesereader prints a reading-assist report for Japanese text:
// each sentence is split into dictionary-sized units with their readings,
// conjugations and glosses.
//
// Usage:
//
//	japanesereader [text ...]   analyse the arguments, or stdin lines when none
//	japanesereader -serve       run the JSON HTTP API
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"japanesereader/analyze"
	"japanesereader/config"
	"japanesereader/conjugate"
	"japanesereader/dictionary"
	"japanesereader/ingest"
	"japanesereader/kanji"
	"japanesereader/logger"
	"japanesereader/lookup"
	"japanesereader/metrics"
	"japanesereader/segment"
	"japanesereader/server"
	"japanesereader/tokenize"
	"japanesereader/translate"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of analysing text")
	asJSON := flag.Bool("json", false, "print reports as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Setup(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *serve, *asJSON, flag.Args()); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type app struct {
	tok      *tokenize.Kagome
	engine   *conjugate.Engine
	analyzer *analyze.Analyzer
	metrics  *metrics.Metrics
	closers  []io.Closer
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			slog.Warn("close failed", "err", err)
		}
	}
}

func build(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{metrics: metrics.New(nil)}

	dict, err := dictionary.Load(cfg.Dictionary.JMdictPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, dict)
	cached, err := lookup.NewDictionary(dict, cfg.Cache.LookupSize, a.metrics)
	if err != nil {
		return nil, err
	}

	var readings *kanji.Readings
	if cfg.Dictionary.KanjidicPath != "" {
		if readings, err = kanji.Load(cfg.Dictionary.KanjidicPath); err != nil {
			return nil, err
		}
	}

	if a.tok, err = tokenize.NewUniDic(); err != nil {
		return nil, err
	}
	secondary, err := tokenize.NewIPA()
	if err != nil {
		return nil, err
	}

	rules, err := conjugate.DefaultRules()
	if err != nil {
		return nil, err
	}
	if a.engine, err = conjugate.NewEngine(rules, cfg.Cache.ParadigmSize); err != nil {
		return nil, err
	}

	tr, err := a.translator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("analyzers ready", "primary", a.tok.Name(), "secondary", secondary.Name(),
		"entries", dict.Len(), "headwords", dict.Headwords())

	seg := segment.NewSegmenter(segment.NewResolver(a.tok, secondary, cached, a.engine))
	a.analyzer = analyze.New(a.tok, seg, tr, analyze.Options{
		Workers: cfg.Analyze.Workers,
		Kanji:   readings,
		Metrics: a.metrics,
	})
	return a, nil
}

// translator returns nil when no translation service is configured.
func (a *app) translator(ctx context.Context, cfg *config.Config) (translate.Translator, error) {
	if cfg.Translate.URL == "" {
		slog.Info("translation disabled")
		return nil, nil
	}
	client := translate.New(translate.Config{
		URL:     cfg.Translate.URL,
		Source:  cfg.Translate.Source,
		Target:  cfg.Translate.Target,
		APIKey:  cfg.Translate.APIKey,
		Timeout: cfg.Translate.Timeout,
	})

	var store lookup.Store
	if cfg.Cache.RedisAddr != "" {
		rs, err := lookup.NewRedisStore(ctx, lookup.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TranslationTTL,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rs)
		store = rs
	} else {
		ms, err := lookup.NewMemoryStore(cfg.Cache.LookupSize)
		if err != nil {
			return nil, err
		}
		store = ms
	}
	return lookup.NewTranslator(client, store, a.metrics), nil
}

func run(ctx context.Context, cfg *config.Config, serve, asJSON bool, args []string) error {
	a, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if serve {
		return server.New(cfg.Server, a.analyzer, a.engine, a.metrics).Run(ctx)
	}

	input := strings.Join(args, "\n")
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(b)
	}
	if cfg.Log.DumpDir != "" {
		if err := logger.InitLogs(cfg.Log.DumpDir); err != nil {
			return err
		}
	}
	return a.report(ctx, cfg, ingest.Lines(input), asJSON)
}

// report pushes sentences through the tokenize and analyze stages and prints
// each report as it arrives.
func (a *app) report(ctx context.Context, cfg *config.Config, sentences []ingest.Sentence, asJSON bool) error {
	q := ingest.NewQueue(len(sentences))
	go func() {
		defer q.Close()
		for _, s := range sentences {
			if err := q.Send(ctx, s); err != nil {
				return
			}
		}
	}()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var errs []error
	for res := range a.analyzer.Start(ctx, a.tok.Start(ctx, q.C())) {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("sentence %s: %w", res.Report.SentenceID, res.Err))
			continue
		}
		if cfg.Log.DumpDir != "" {
			if err := logger.LogJSON(cfg.Log.DumpDir, res.Report.SentenceID+"_report", res.Report); err != nil {
				slog.Warn("dump report failed", "err", err)
			}
		}
		if asJSON {
			if err := analyze.WriteJSON(out, res.Report); err != nil {
				return err
			}
			continue
		}
		if err := analyze.Format(out, res.Report); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
