package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	_ "marketplace_service/cmd/store_service/docs" // 引入生成的 Swagger 文件
	accountapp "marketplace_service/internal/account/app"
	accountdomain "marketplace_service/internal/account/domain"
	accountrepo "marketplace_service/internal/account/repository"
	"marketplace_service/internal/api/handlers"
	"marketplace_service/internal/api/router"
	catalogapp "marketplace_service/internal/catalog/app"
	catalogrepo "marketplace_service/internal/catalog/repository"
	messagingapp "marketplace_service/internal/messaging/app"
	messagingrepo "marketplace_service/internal/messaging/repository"
	orderapp "marketplace_service/internal/order/app"
	orderrepo "marketplace_service/internal/order/repository"
	"marketplace_service/pkg/config"
	"marketplace_service/pkg/database"
	"marketplace_service/pkg/logger"
	testtool "marketplace_service/pkg/test_tool"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.StoreService, config.EnvConfig.StoreServiceLogPath)

	cfg := config.LoadConfig[config.Store](config.EnvConfig.StoreService, config.EnvConfig.StoreServiceYAMLPath)

	sqlParams := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", sqlParams)),
			zap.Error(err),
		)
	}
	defer pool.Close()

	// 商品目錄走 gorm，其餘模組共用 pgx pool
	gormDB, err := database.NewPGConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect gorm to postgreSQL", zap.Error(err))
	}

	masterName, sentinel := config.GetRedisSetting()
	redisRepo, err := database.NewRedisRepository[accountdomain.UserSession](masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect minio err : %v", err))
	}

	accountRepo := accountrepo.NewAccountRepository(pool)
	accountUsecase := accountapp.NewAccountUseCase(accountRepo, cfg.SessionTTL*time.Minute, redisRepo)

	catalogRepo := catalogrepo.NewProductRepo(gormDB)
	if err := catalogRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal(fmt.Sprintf("catalog migrate err : %v", err))
	}
	catalogUsecase := catalogapp.NewCatalogUseCase(catalogRepo, minioClient)

	orderRepo := orderrepo.NewOrderRepository(pool)
	orderUsecase := orderapp.NewOrderUseCase(orderRepo)

	messageRepo := messagingrepo.NewMessageRepository(pool)
	conversationUsecase := messagingapp.NewConversationUseCase(messageRepo, accountRepo)

	accountHandler := handlers.NewAccountHandler(accountUsecase)
	catalogHandler := handlers.NewCatalogHandler(catalogUsecase)
	orderHandler := handlers.NewOrderHandler(orderUsecase)
	messagingHandler := handlers.NewMessagingHandler(conversationUsecase)

	r := fiber.New()

	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.StoreServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, accountHandler, catalogHandler, orderHandler, messagingHandler)

	testtool.StartPprof()

	if err := r.Listen(cfg.IP + ":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
