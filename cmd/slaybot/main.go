// Command slaybot runs the Telegram bot.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/slaybot/bootstrap"
	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/config"
	"github.com/kbukum/slaybot/dialogue"
	"github.com/kbukum/slaybot/generation"
	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/server"
	"github.com/kbukum/slaybot/sticker"
	"github.com/kbukum/slaybot/storage"
	_ "github.com/kbukum/slaybot/storage/local"
	"github.com/kbukum/slaybot/telegram"
	"github.com/kbukum/slaybot/version"
	"github.com/kbukum/slaybot/workflow"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	envFile := flag.String("env", "", "path to .env file")
	flag.Parse()

	if err := run(*configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "slaybot: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, envFile string) error {
	cfg := defaultConfig()
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	if err := wire(app); err != nil {
		return err
	}
	return app.Run(context.Background())
}

// wire registers the components in start order and builds the engine once
// the catalog has loaded.
func wire(app *bootstrap.App[*Config]) error {
	cfg := app.Cfg
	log := app.Logger

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	store := dialogue.NewStore(dialogue.WithIdleTimeout(cfg.Dialogue.IdleTimeout))
	storageComp := storage.NewComponent(cfg.Storage, log)
	catalogComp := sticker.NewComponent(cfg.Sticker, storageComp, log, metrics)
	bot, err := telegram.NewComponent(cfg.Telegram, log)
	if err != nil {
		return err
	}

	components := []component.Component{
		observability.NewComponent(cfg.Observability, observability.Resource{
			Service:     cfg.Name,
			Version:     cfg.Version,
			Environment: cfg.Environment,
		}),
		storageComp,
		catalogComp,
		dialogue.NewSweeper(store, cfg.Dialogue.IdleTimeout, log),
	}
	if cfg.Server.Enabled {
		srv := server.New(cfg.Server, log)
		srv.RegisterProbes(cfg.Name, app.Components.HealthAll)
		components = append(components, server.NewComponent(srv))
	}
	for _, c := range components {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	// The engine needs the loaded catalog and the bot needs the engine, so
	// the bot is registered and started last, from the configure phase.
	app.OnConfigure(func(ctx context.Context, app *bootstrap.App[*Config]) error {
		pool, err := rephrasers(cfg.Providers, cfg.Generation.Prompt, log, metrics)
		if err != nil {
			return err
		}
		controller, err := generation.NewController(pool, cfg.Generation,
			generation.WithLogger(log), generation.WithMetrics(metrics))
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			log.Warn("No LLM provider configured, generation requests will fail")
		}

		engine, err := workflow.NewEngine(controller, catalogComp.Catalog(), store, bot.Messenger(), cfg.Workflow,
			workflow.WithLogger(log), workflow.WithMetrics(metrics))
		if err != nil {
			return err
		}
		bot.SetHandler(engine)
		if err := app.RegisterComponent(bot); err != nil {
			return err
		}
		return app.Components.StartAll(ctx)
	})
	return nil
}

// rephrasers builds one instrumented rephraser per enabled provider.
func rephrasers(providers ProvidersConfig, prompt string, log *logger.Logger, metrics *observability.Metrics) ([]generation.Rephraser, error) {
	var pool []generation.Rephraser
	for _, pc := range providers.all() {
		if !pc.Enabled {
			continue
		}
		adapter, err := llm.New(*pc)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", pc.Dialect, err)
		}
		r := generation.NewLLMRephraser(adapter.Name(), adapter, prompt)
		pool = append(pool, generation.Instrument(r, log, metrics, adapter.Resilience()))
	}
	return pool, nil
}
