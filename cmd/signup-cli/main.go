package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/live"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to ./signup.yaml or $SIGNUP_CONFIG)")
	mode := flag.String("mode", "", "terminal front end: prompt or live")
	source := flag.String("source", "", "OpenAPI document path (embedded document if empty)")
	renderer := flag.String("render", "", "print the mount page with a renderer (vanilla or text) and exit")
	output := flag.String("output", "", "output file for -render (stdout if empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mode != "" {
		cfg.UI.Mode = *mode
	}
	if *source != "" {
		cfg.OpenAPI.Spec = *source
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger := cfg.Log.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	orch, err := newOrchestrator(cfg)
	if err != nil {
		log.Fatalf("Failed to configure renderers: %v", err)
	}
	ctrl, err := orch.NewController(ctx, request(cfg),
		form.WithSubmitter(form.NewAcknowledger(logger)),
		form.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to build signup form: %v", err)
	}
	defer ctrl.Unmount()

	if *renderer != "" {
		page, err := orch.Render(ctx, *renderer, ctrl.View(), orch.RenderOptions(cfg.OpenAPI.Operation, render.RenderOptions{}))
		if err != nil {
			log.Fatalf("Failed to render page: %v", err)
		}
		if *output != "" {
			if err := os.WriteFile(*output, page, 0o644); err != nil {
				log.Fatalf("Failed to write output: %v", err)
			}
			fmt.Printf("Page written to %s\n", *output)
			return
		}
		fmt.Println(string(page))
		return
	}

	navigator := form.NavigatorFunc(func(_ context.Context, link model.Link) error {
		fmt.Printf("Opening %s (%s)\n", link.Label, link.Href)
		return nil
	})

	switch cfg.UI.Mode {
	case config.ModeLive:
		runLive(ctx, cfg, ctrl, navigator)
	default:
		runPrompt(ctx, ctrl, navigator, logger)
	}
}

func runPrompt(ctx context.Context, ctrl *form.Controller, nav form.Navigator, logger *slog.Logger) {
	session := tui.NewSession(tui.WithNavigator(nav))
	receipt, err := session.Run(ctx, ctrl)
	switch {
	case errors.Is(err, tui.ErrAborted):
		fmt.Println("Signup cancelled.")
	case errors.Is(err, tui.ErrGaveUp):
		fmt.Println("Signup not completed.")
		os.Exit(1)
	case err != nil:
		log.Fatalf("Signup failed: %v", err)
	default:
		logger.Debug("signup completed", "receipt", receipt.ID)
	}
}

func runLive(ctx context.Context, cfg config.Config, ctrl *form.Controller, nav form.Navigator) {
	selection, err := vanilla.NewManifestSelector().Select(cfg.UI.Theme, cfg.UI.Variant)
	if err != nil {
		log.Fatalf("Failed to select theme: %v", err)
	}
	result, err := live.Run(ctx, ctrl, live.WithNavigator(nav), live.WithTheme(vanilla.ThemeConfig(selection)))
	if err != nil {
		log.Fatalf("Signup failed: %v", err)
	}
	switch {
	case result.Receipt != nil:
		fmt.Printf("Account created for %s (%s)\n", result.Receipt.Username, result.Receipt.ID)
	case result.Navigated != nil:
		fmt.Printf("Left signup for %s\n", result.Navigated.Label)
	default:
		fmt.Println("Signup cancelled.")
	}
}

func newOrchestrator(cfg config.Config) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithThemeSelector(vanilla.NewManifestSelector(), cfg.UI.Theme, cfg.UI.Variant))
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)
	registry.MustRegister(tui.NewRenderer())

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(html.Name()),
	}
	if dir := strings.TrimSpace(cfg.UI.SchemaDir); dir != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(dir)))
	}
	return orchestrator.New(options...), nil
}

func request(cfg config.Config) orchestrator.Request {
	req := orchestrator.Request{OperationID: cfg.OpenAPI.Operation}
	if spec := strings.TrimSpace(cfg.OpenAPI.Spec); spec != "" {
		req.Source = pkgopenapi.SourceFromFile(spec)
	}
	return req
}
