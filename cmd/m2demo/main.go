// Command m2demo drives a reasoning-capable chat model through an
// interleaved thinking scenario: the model alternates between thinking
// and calling the design-doc lookup tools until it produces a final
// brief, and every event lands in a per-run transcript.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"m2demo/pkg/agent"
	"m2demo/pkg/config"
	"m2demo/pkg/log"
	"m2demo/pkg/provider"
	"m2demo/pkg/provider/gemini"
	"m2demo/pkg/provider/minimax"
	"m2demo/pkg/provider/script"
	"m2demo/pkg/report"
	"m2demo/pkg/scenario"
	"m2demo/pkg/tool"
	"m2demo/pkg/tool/docs"
	"m2demo/pkg/transcript"
)

func main() {
	scenarioName := flag.String("scenario", scenario.Default,
		"scenario to run ("+strings.Join(scenario.Names(), " | ")+")")
	list := flag.Bool("list", false, "list scenarios and exit")
	maxTurns := flag.Int("max-turns", -1, "override the turn limit (0 = unbounded)")
	flag.Parse()

	if *list {
		for _, name := range scenario.Names() {
			fmt.Println(name)
		}
		return
	}

	if err := run(*scenarioName, *maxTurns); err != nil {
		fmt.Fprintln(os.Stderr, "m2demo:", err)
		os.Exit(1)
	}
}

func run(scenarioName string, maxTurns int) error {
	ctx := context.Background()

	sc, err := scenario.Get(scenarioName)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if maxTurns >= 0 {
		cfg.MaxTurns = maxTurns
	}
	if err := cfg.Validate(sc.Offline); err != nil {
		return err
	}

	logger := log.New(&cfg.Log)

	llm, model, err := buildProvider(ctx, cfg, sc)
	if err != nil {
		return err
	}

	lib, err := loadLibrary(cfg)
	if err != nil {
		return err
	}
	registry := tool.NewRegistry()
	docs.RegisterAll(registry, lib)

	tw, err := transcript.NewFileWriter(cfg.LogDir)
	if err != nil {
		return err
	}

	console := report.New()
	console.Banner(tw.RunID(), sc.Name, model)

	loop, err := agent.New(agent.Config{
		Provider:   llm,
		Registry:   registry,
		Transcript: tw,
		Reporter:   console,
		Logger:     logger,
		MaxTurns:   cfg.MaxTurns,
		Rates:      cfg.Rates(),
	})
	if err != nil {
		return err
	}

	vars := map[string]any{"model": model}
	res, err := loop.Run(ctx, scenario.SystemPrompt(model), sc.UserPrompt.Render(vars))
	if err != nil {
		return err
	}

	console.Summary(res)
	console.LogSaved(tw.Path())
	return nil
}

// buildProvider selects the chat backend for the scenario: the scripted
// replay for offline runs, otherwise the configured live endpoint.
func buildProvider(ctx context.Context, cfg *config.Config, sc scenario.Scenario) (provider.ChatModel, string, error) {
	if sc.Offline {
		return script.Demo(), cfg.MiniMax.Model, nil
	}

	switch cfg.Provider {
	case config.ProviderMiniMax:
		llm, err := minimax.NewChatModel(minimax.Config{
			APIKey:  cfg.MiniMax.APIKey,
			BaseURL: cfg.MiniMax.BaseURL,
			Model:   cfg.MiniMax.Model,
		})
		if err != nil {
			return nil, "", err
		}
		return llm, cfg.MiniMax.Model, nil
	case config.ProviderGemini:
		llm, err := gemini.NewChatModel(ctx, gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			return nil, "", err
		}
		return llm, cfg.Gemini.Model, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func loadLibrary(cfg *config.Config) (*docs.Library, error) {
	if cfg.DocsDir != "" {
		return docs.NewLibraryFromDir(cfg.DocsDir)
	}
	return docs.NewLibrary()
}
