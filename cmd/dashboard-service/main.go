package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/auth"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/config"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/db"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/middleware"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/server"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/tracing"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/driver"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/geo"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/metrics"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/order"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/user"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/vehicle"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", "configs/dashboard-service.json", "caminho do arquivo de configuração")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// CONSUL_CONFIG_KEY aponta para uma config centralizada no Consul KV;
	// quando presente ela substitui o arquivo local.
	if key := os.Getenv("CONSUL_CONFIG_KEY"); key != "" {
		kvCfg, kvErr := config.LoadConfigFromConsulKV(cfg.Consul.Host, cfg.Consul.Port, key)
		if kvErr != nil {
			return fmt.Errorf("consul kv config: %w", kvErr)
		}
		cfg = kvCfg
	}

	log, err := logger.NewLogger(cfg.Log.Backend, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	tracer, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger.Endpoint, cfg.Jaeger.Sampler)
	if err != nil {
		log.Warnf("tracer indisponível: %v", err)
	} else {
		opentracing.SetGlobalTracer(tracer)
		defer closer.Close()
	}

	gdb, err := db.NewMySQL(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Database,
		cfg.Database.MaxIdle, cfg.Database.MaxOpen,
	)
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	if err := gdb.AutoMigrate(&order.Order{}, &vehicle.Vehicle{}, &driver.Driver{}, &driver.Trip{}, &user.User{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	m := metrics.NewOrderMetrics()

	orderOpts := []order.ServiceOption{order.WithMetrics(m)}
	if cfg.Geo.Endpoint != "" {
		orderOpts = append(orderOpts, order.WithGeocoder(geo.NewClient(cfg.Geo, log)))
	}

	orderRepo := order.NewRepo(gdb)
	orderSvc := order.NewService(orderRepo, log, orderOpts...)
	orderHandler := order.NewHTTPHandler(orderSvc, order.NewStatsAggregator(orderRepo))

	vehicleHandler := vehicle.NewHTTPHandler(vehicle.NewService(vehicle.NewRepo(gdb), log))
	driverHandler := driver.NewHTTPHandler(driver.NewService(driver.NewRepo(gdb), log))
	userHandler := user.NewHTTPHandler(user.NewService(user.NewRepo(gdb), cfg.Auth, log))

	// 300 req/min por instância cobre o painel com folga
	limiter := middleware.NewSlidingWindow(time.Minute, 300)

	register := func(app *fiber.App) error {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		api := app.Group("/api", middleware.RateLimit(limiter))
		userHandler.RegisterPublicRoutes(api)

		protected := api.Group("", auth.Protected(cfg.Auth))
		userHandler.RegisterRoutes(protected)
		orderHandler.RegisterRoutes(protected)
		vehicleHandler.RegisterRoutes(protected)
		driverHandler.RegisterRoutes(protected)
		return nil
	}

	return server.RunHTTPServer(cfg, log, register, server.WithShutdownTimeout(10*time.Second))
}
