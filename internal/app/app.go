package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type coreService struct {
	catalog   service.Catalog
	cart      *service.CartStore
	checkout  service.Checkout
	adminGate service.AdminGate
	dashboard service.Dashboard
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	storage    storage.Storage
	catalog    catalog.Client
	orderSerde schema.Serde
	producer   *kafka.OrdersProducer
	service    coreService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	if !app.cfg.Broker.Enabled() {
		slog.Info("order events are disabled", "op", op)
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	orderSerde, err := schema.NewSerdeOrderV1(
		app.ctx,
		schema.SubjectOpt(app.cfg.Broker.OrdersTopic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.orderSerde = orderSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	st, err := storage.Open(app.ctx, storage.Config{
		Driver:        app.cfg.Storage.Driver,
		LevelDBPath:   app.cfg.Storage.LevelDBPath,
		RedisAddr:     app.cfg.Storage.RedisAddr,
		RedisPassword: app.cfg.Storage.RedisPassword,
		RedisDB:       app.cfg.Storage.RedisDB,
		SQLDB:         app.cfg.Storage.SQLDB,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.storage = st

	catalogClient, err := catalog.NewClient(catalog.Config{
		BaseURL:     app.cfg.Catalog.BaseURL,
		Timeout:     app.cfg.Catalog.Timeout,
		MaxAttempts: app.cfg.Catalog.MaxAttempts,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalog = catalogClient

	if app.orderSerde == nil {
		return
	}

	var tlsCfg *tls.Config
	if tlsFiles := app.cfg.Broker.TLS; tlsFiles.Enabled() {
		tlsCfg, err = adapter.MakeTLSConfig(
			tlsFiles.CA, tlsFiles.Cert, tlsFiles.Key,
		)
		if err != nil {
			app.fallDown(op, err)
		}
	}

	producer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.OrdersTopic,
			tlsCfg,
		),
		kafka.ProducerEncoderOpt(app.orderSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = &producer
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	app.service.catalog = service.NewCatalog(app.catalog)
	app.service.cart = service.NewCartStore(
		app.ctx, app.storage, service.CartSnapshotKey,
	)

	var opts []service.CheckoutOpt
	if app.producer != nil {
		opts = append(opts, service.PublisherOpt(app.producer))
	}
	app.service.checkout = service.NewCheckout(
		app.service.cart, app.storage, opts...,
	)

	adminGate, err := service.NewAdminGate(
		app.storage, app.cfg.Admin.Email, app.cfg.Admin.Password,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.service.adminGate = adminGate

	app.service.dashboard = service.NewDashboard(
		app.service.catalog, app.service.checkout,
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service.catalog)
	httphandler.RegisterCart(mux, app.service.cart, app.service.catalog)
	httphandler.RegisterCheckout(mux, app.service.checkout)
	httphandler.RegisterAdmin(
		mux, app.service.adminGate, app.service.dashboard,
	)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.producer != nil {
		app.producer.Close()
	}
	if err := app.storage.Close(); err != nil {
		slog.Error("failed to close storage", "err", err)
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
