package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/pkg/form"
	pkgopenapi "github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
	"github.com/goliatone/go-signup/pkg/renderers/vanilla"
)

func main() {
	var (
		configFlag = flag.String("config", "", "config file (defaults to ./signup.yaml or $SIGNUP_CONFIG)")
		addrFlag   = flag.String("addr", "", "HTTP listen address (overrides config)")
		sourceFlag = flag.String("source", "", "OpenAPI document path (embedded document if empty)")
		uiFlag     = flag.String("ui", "", "UI schema directory (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if *sourceFlag != "" {
		cfg.OpenAPI.Spec = *sourceFlag
	}
	if *uiFlag != "" {
		cfg.UI.SchemaDir = *uiFlag
	}
	logger := cfg.Log.NewLogger()

	renderer, err := vanilla.New(
		vanilla.WithThemeSelector(vanilla.NewManifestSelector(), cfg.UI.Theme, cfg.UI.Variant),
		vanilla.WithAssetsPrefix(cfg.UI.AssetsPrefix),
	)
	if err != nil {
		log.Fatalf("vanilla renderer: %v", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	registry.MustRegister(tui.NewRenderer())
	options := []orchestrator.Option{orchestrator.WithRegistry(registry)}
	if dir := strings.TrimSpace(cfg.UI.SchemaDir); dir != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(dir)))
	}
	orch := orchestrator.New(options...)

	req := orchestrator.Request{OperationID: cfg.OpenAPI.Operation}
	if spec := strings.TrimSpace(cfg.OpenAPI.Spec); spec != "" {
		req.Source = pkgopenapi.SourceFromFile(spec)
	}
	fields, err := orch.Fields(context.Background(), req)
	if err != nil {
		log.Fatalf("derive signup fields: %v", err)
	}

	server, err := newSignupServer(
		fields,
		form.NewAcknowledger(logger),
		registry,
		renderer.Name(),
		orch.RenderOptions(cfg.OpenAPI.Operation, render.RenderOptions{}),
		logger,
	)
	if err != nil {
		log.Fatalf("signup server: %v", err)
	}

	httpServer := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     server.routes(),
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	log.Printf("listening on %s (signup at %s)", cfg.Server.Addr, signupPath)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
