
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"content-quality-analyzer/internal/analyzer"
	"content-quality-analyzer/internal/app"
	"content-quality-analyzer/internal/classifier"
	"content-quality-analyzer/internal/config"
	"content-quality-analyzer/internal/ioformats"
	"content-quality-analyzer/internal/models"
	"content-quality-analyzer/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qa",
		Usage: "score the quality of web pages and text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML config file"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "model artifact path (overrides config)"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "analyze a single URL, text or file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "page to fetch and analyze"},
					&cli.StringFlag{Name: "text", Usage: "inline text to analyze"},
					&cli.StringFlag{Name: "file", Usage: "read text to analyze from file ('-' for stdin)"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
				},
				Action: cmdAnalyze,
			},
			{
				Name:  "batch",
				Usage: "analyze every entry of a CSV or NDJSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "input file (csv with 'url'/'text' columns or ndjson)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output NDJSON file (default stdout)"},
					&cli.IntFlag{Name: "concurrency", Usage: "worker concurrency (default from config)"},
				},
				Action: cmdBatch,
			},
			{
				Name:  "model",
				Usage: "inspect or convert model artifacts",
				Subcommands: []*cli.Command{
					{
						Name:   "inspect",
						Usage:  "print a summary of the model artifact",
						Action: cmdModelInspect,
					},
					{
						Name:  "convert",
						Usage: "convert the model artifact between JSON and SQLite",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "out", Required: true, Usage: "destination path; .db/.sqlite for SQLite, otherwise JSON"},
						},
						Action: cmdModelConvert,
					},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if v := c.String("model"); v != "" {
		cfg.Model.Path = v
	}
	return cfg, app.Logger(cfg, c.Bool("debug")), nil
}

func buildAnalyzer(c *cli.Context) (*analyzer.Analyzer, *config.Config, error) {
	cfg, l, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	a, _, err := app.Build(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func cmdAnalyze(c *cli.Context) error {
	req := models.AnalyzeRequest{URL: c.String("url"), Text: c.String("text")}
	if path := c.String("file"); path != "" {
		text, err := readText(c.App.Reader, path)
		if err != nil {
			return err
		}
		req.Text = text
	}

	a, _, err := buildAnalyzer(c)
	if err != nil {
		return err
	}
	res, err := a.Analyze(c.Context, req)
	if err != nil {
		return err
	}
	return printResult(c.App.Writer, c.String("format"), res)
}

func readText(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return string(b), nil
}

func printResult(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func cmdBatch(c *cli.Context) error {
	reqs, err := ioformats.ReadRequests(c.String("input"))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	a, cfg, err := buildAnalyzer(c)
	if err != nil {
		return err
	}
	concurrency := cfg.Batch.Concurrency
	if n := c.Int("concurrency"); n > 0 {
		concurrency = n
	}

	items := a.AnalyzeBatch(c.Context, reqs, concurrency)

	w := c.App.Writer
	if out := c.String("output"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := ioformats.WriteNDJSON(w, items); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	failed := 0
	for _, it := range items {
		if it.Error != "" {
			failed++
		}
	}
	if failed == len(items) {
		return errors.New("every item failed")
	}
	return nil
}

type modelSummary struct {
	Path      string  `json:"path" yaml:"path"`
	Features  int     `json:"features" yaml:"features"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	NGramMin  int     `json:"ngram_min" yaml:"ngram_min"`
	NGramMax  int     `json:"ngram_max" yaml:"ngram_max"`
	StopWords string  `json:"stop_words" yaml:"stop_words"`
}

func cmdModelInspect(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	m, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		return err
	}
	a := m.Artifact()
	return printResult(c.App.Writer, "yaml", modelSummary{
		Path:      cfg.Model.Path,
		Features:  len(a.Features),
		Intercept: a.Intercept,
		NGramMin:  a.NGramMin,
		NGramMax:  a.NGramMax,
		StopWords: a.StopWords,
	})
}

func cmdModelConvert(c *cli.Context) error {
	cfg, l, err := loadConfig(c)
	if err != nil {
		return err
	}
	m, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := classifier.Save(out, m.Artifact()); err != nil {
		return err
	}
	l.Infof("converted %s -> %s (%d features)", cfg.Model.Path, out, len(m.FeatureNames()))
	return nil
}
