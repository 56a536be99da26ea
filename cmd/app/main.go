package main

import (
	"fmt"
	"log/slog"
	"os"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(configs.PostgresDSN()), &gorm.Config{
		// TranslateError turns driver unique violations into
		// gorm.ErrDuplicatedKey, which the cart repository relies on.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateGetUnassignedOrdersQueryHandler(),
		root.CreateDispatchAssignmentsCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:        goDotEnvVariable("KAFKA_HOST"),
		RedisHost:        goDotEnvVariable("REDIS_HOST"),
		DispatchRadiusKm: goDotEnvVariable("DISPATCH_RADIUS_KM"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		root.CreateAddCartItemCommandHandler(),
		root.CreateChangeItemQuantityCommandHandler(),
		root.CreateRemoveCartItemCommandHandler(),
		root.CreateApplyCouponCommandHandler(),
		root.CreateCheckoutCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateDispatchAssignmentsCommandHandler(),
		root.CreateAcceptAssignmentCommandHandler(),
		root.CreateUpdateDeliveryStatusCommandHandler(),
		root.CreateCreateRiderCommandHandler(),
		root.CreateUpdateRiderLocationCommandHandler(),
		root.CreateGetCartQueryHandler(),
		root.CreateGetUnassignedOrdersQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
