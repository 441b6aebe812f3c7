package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	appLogger, syncLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = syncLogger() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = migrate(ctx, configs.DSN()); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	producer, err := kafka.NewSaramaProducer(configs.KafkaBrokers, appLogger)
	if err != nil {
		log.Fatalf("Error connecting to kafka: %v", err)
	}
	defer producer.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, producer, appLogger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(app.CreateHTTPServer())
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort)
}

func migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return postgres.Migrate(ctx, sqlDB)
}

func getConfigs() cmd.Config {
	// A missing .env is fine: the environment may already be populated.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOr("DB_NAME", "fulfillment"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),
		LogLevel:   envOr("LOG_LEVEL", "info"),

		CarrierBaseURL: envOr("CARRIER_BASE_URL", "http://localhost:8090"),
		CarrierAPIKey:  os.Getenv("CARRIER_API_KEY"),
		OriginPostcode: envOr("ORIGIN_POSTCODE", "10001"),

		KafkaBrokers:              strings.Split(envOr("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaOrderChangedTopic:    envOr("KAFKA_ORDER_CHANGED_TOPIC", "order.status-changed"),
		KafkaRefundRequestedTopic: envOr("KAFKA_REFUND_REQUESTED_TOPIC", "order.refund-requested"),

		SchedulerCron:      envOr("SCHEDULER_CRON", "0 * * * * *"),
		SchedulerBatchSize: envIntOr("SCHEDULER_BATCH_SIZE", 100),
		CarrierHealthCron:  envOr("CARRIER_HEALTH_CRON", "*/30 * * * * *"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}

func startWebServer(ctx context.Context, e *echo.Echo, port string) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
