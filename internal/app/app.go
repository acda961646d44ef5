
// Package app wires configuration into a ready-to-use analyzer.
package app

import (
	"os"

	"content-quality-analyzer/internal/acquire"
	"content-quality-analyzer/internal/analyzer"
	"content-quality-analyzer/internal/classifier"
	"content-quality-analyzer/internal/config"
	"content-quality-analyzer/internal/crawler"
	"content-quality-analyzer/internal/parser"
	"content-quality-analyzer/pkg/logger"
)

// Logger builds the process logger from config; debug forces debug level.
func Logger(cfg *config.Config, debug bool) *logger.Logger {
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	return logger.NewWithOptions(os.Stderr, level, cfg.Log.Format)
}

func Build(cfg *config.Config, l *logger.Logger) (*analyzer.Analyzer, *classifier.Loader, error) {
	p, err := parser.New(cfg.Extract.Mode)
	if err != nil {
		return nil, nil, err
	}
	client := crawler.NewHTTPClient(cfg.Fetch.Timeout, cfg.Fetch.DialTimeout, cfg.Fetch.MaxBytes, cfg.Fetch.UserAgent)
	loader := classifier.NewLoader(cfg.Model.Path)

	a := analyzer.New(
		acquire.New(client, p, cfg.Fetch.Timeout),
		analyzer.FromLoader(loader),
		analyzer.WithTopK(cfg.Explain.TopK),
		analyzer.WithLogger(l),
	)
	return a, loader, nil
}
