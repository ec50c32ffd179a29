package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"parceltrack/cmd"
	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/jobs"
	"parceltrack/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	notifier := kafka.NewNotifier(strings.Split(configs.KafkaHost, ","))
	defer func() {
		_ = notifier.Close()
	}()

	m := metrics.NewMetrics(configs.MetricsNamespace)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, m)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateDispatchOutboxCommandHandler(),
		app.CreatePurgeExpiredTrackingItemsCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:        goDotEnvVariable("KAFKA_HOST"),
		MetricsNamespace: goDotEnvVariable("METRICS_NAMESPACE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the repositories map to ObjectAlreadyExists.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
