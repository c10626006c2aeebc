// Package roll parses CLI flags and evaluates a dice notation roll.
package roll

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/roll/internal/history"
	"github.com/louisbranch/roll/internal/notation"
	"github.com/louisbranch/roll/internal/platform/config"
	"github.com/louisbranch/roll/internal/platform/otel"
	"github.com/louisbranch/roll/internal/platform/random"
	"github.com/louisbranch/roll/internal/render"
	"github.com/louisbranch/roll/internal/roller"
)

const defaultNotation = "20d10r1"

// Config holds roll command configuration.
type Config struct {
	Notation    string `env:"ROLL_NOTATION" envDefault:"20d10r1"`
	Seed        int64  `env:"ROLL_SEED"`
	HistoryPath string `env:"ROLL_HISTORY_PATH"`
	Plain       bool   `env:"ROLL_PLAIN"`
}

// ParseConfig parses environment and flags into a Config. A positional
// argument overrides the notation.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite history path (empty disables history)")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if arg := fs.Arg(0); arg != "" {
		cfg.Notation = arg
	}
	if cfg.Notation == "" {
		cfg.Notation = defaultNotation
	}
	return cfg, nil
}

// Run parses the notation, rolls it and prints the result.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "roll")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	parsed, err := notation.Parse(cfg.Notation)
	if err != nil {
		return fmt.Errorf("parse notation %q: %w", cfg.Notation, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
	}

	ctx, span := tracer().Start(ctx, "roll.eval", trace.WithAttributes(
		attribute.String("roll.notation", parsed.String()),
		attribute.Int64("roll.seed", seed),
	))
	result, err := roller.Eval(roller.Request{Roll: parsed, Seed: seed})
	span.End()
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", cfg.Notation, err)
	}

	color := !cfg.Plain && isatty.IsTerminal(os.Stdout.Fd())
	fmt.Println(render.New(color).Result(parsed, result))

	if cfg.HistoryPath != "" {
		if err := record(ctx, cfg.HistoryPath, parsed, result); err != nil {
			return err
		}
	}
	return nil
}

func record(ctx context.Context, path string, parsed notation.Roll, result roller.Result) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRoll(ctx, history.Entry{
		Notation: parsed.String(),
		Seed:     result.Seed,
		Total:    result.Total,
		Results:  render.New(false).Values(parsed, result.Values),
	})
	return err
}

func tracer() trace.Tracer {
	return otelapi.Tracer("github.com/louisbranch/roll/internal/cmd/roll")
}
