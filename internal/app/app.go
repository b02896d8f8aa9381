// Package app builds the relay's object graph and runs it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/nfrund/wabridge/internal/config"
	"github.com/nfrund/wabridge/internal/events"
	"github.com/nfrund/wabridge/internal/outbound"
	"github.com/nfrund/wabridge/internal/pubsub"
	"github.com/nfrund/wabridge/internal/relay"
	"github.com/nfrund/wabridge/internal/server"
	"github.com/nfrund/wabridge/internal/store"
	"github.com/nfrund/wabridge/internal/topicmgr"
	"github.com/nfrund/wabridge/internal/websocket"
)

// App owns the dependency container.
type App struct {
	injector *do.RootScope
}

// New registers every service provider. Nothing is constructed until first use.
func New(cfg config.Provider) *App {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.Provide(injector, provideTopics)
	do.Provide(injector, provideTracing)
	do.Provide(injector, provideBus)
	do.Provide(injector, provideStore)
	do.Provide(injector, provideNotifier)
	do.Provide(injector, provideSender)
	do.Provide(injector, provideRelay)
	do.Provide(injector, provideHub)
	do.Provide(injector, provideAuditLog)
	do.Provide(injector, provideServer)

	return &App{injector: injector}
}

// Start registers topics and bus subscriptions, then returns the HTTP server
// without starting it. Subscriptions end when ctx is canceled.
func (a *App) Start(ctx context.Context) (*server.Server, error) {
	if _, err := do.Invoke[*topicmgr.Manager](a.injector); err != nil {
		return nil, fmt.Errorf("register topics: %w", err)
	}

	hub, err := do.Invoke[*websocket.Hub](a.injector)
	if err != nil {
		return nil, err
	}
	if err := hub.Start(ctx); err != nil {
		return nil, err
	}

	audit, err := do.Invoke[*events.AuditLog](a.injector)
	if err != nil {
		return nil, err
	}
	if err := audit.Start(ctx); err != nil {
		return nil, err
	}

	return do.Invoke[*server.Server](a.injector)
}

// Run starts the relay and serves HTTP until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.Shutdown()

	srv, err := a.Start(ctx)
	if err != nil {
		return err
	}

	cfg := do.MustInvoke[config.Provider](a.injector)
	return srv.Start(ctx, fmt.Sprintf(":%d", cfg.GetPort()))
}

// Shutdown releases every constructed service in reverse dependency order.
func (a *App) Shutdown() {
	_ = a.injector.Shutdown()
}

func provideTopics(i do.Injector) (*topicmgr.Manager, error) {
	m := topicmgr.Default()
	if err := websocket.RegisterTopicsWithManager(m); err != nil {
		return nil, err
	}
	if err := relay.RegisterTopicsWithManager(m); err != nil {
		return nil, err
	}
	slog.Debug("Topics registered", "count", m.Count())
	return m, nil
}

// Tracing holds the publish tracer and flushes it on shutdown.
type Tracing struct {
	Tracer  trace.Tracer
	Enabled bool
	cleanup func()
}

// Shutdown flushes pending spans.
func (t *Tracing) Shutdown() {
	t.cleanup()
}

func provideTracing(i do.Injector) (*Tracing, error) {
	cfg := do.MustInvoke[config.Provider](i).GetTracing()
	tracer, cleanup, err := pubsub.SetupOTel(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("set up tracing: %w", err)
	}
	if cfg.Enabled {
		slog.Info("Pubsub tracing enabled", "zipkin_url", cfg.ZipkinURL)
	}
	return &Tracing{Tracer: tracer, Enabled: cfg.Enabled, cleanup: cleanup}, nil
}

func provideBus(i do.Injector) (*pubsub.WatermillBridge, error) {
	tracing := do.MustInvoke[*Tracing](i)
	if tracing.Enabled {
		return pubsub.NewWatermillBridgeWithTracer(tracing.Tracer), nil
	}
	return pubsub.NewWatermillBridge(), nil
}

func provideStore(i do.Injector) (*store.MemoryStore, error) {
	return store.NewMemoryStore(), nil
}

func provideNotifier(i do.Injector) (*events.Notifier, error) {
	return events.NewNotifier(do.MustInvoke[*pubsub.WatermillBridge](i)), nil
}

func provideSender(i do.Injector) (outbound.Sender, error) {
	return outbound.NewSender(do.MustInvoke[config.Provider](i)), nil
}

func provideRelay(i do.Injector) (*relay.Service, error) {
	return relay.NewService(
		do.MustInvoke[*store.MemoryStore](i),
		do.MustInvoke[*events.Notifier](i),
		do.MustInvoke[outbound.Sender](i),
		relay.WithPublisher(do.MustInvoke[*pubsub.WatermillBridge](i)),
	), nil
}

func provideHub(i do.Injector) (*websocket.Hub, error) {
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	return websocket.NewHub(bus, bus), nil
}

func provideAuditLog(i do.Injector) (*events.AuditLog, error) {
	return events.NewAuditLog(do.MustInvoke[*pubsub.WatermillBridge](i), nil), nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	return server.New(
		do.MustInvoke[config.Provider](i),
		do.MustInvoke[*relay.Service](i),
		do.MustInvoke[*websocket.Hub](i),
	), nil
}
