package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/biosecret/todo-api/config"
	"github.com/biosecret/todo-api/database"
	"github.com/biosecret/todo-api/events"
	"github.com/biosecret/todo-api/handlers"
	"github.com/biosecret/todo-api/middleware"
	"github.com/biosecret/todo-api/router"
	"github.com/biosecret/todo-api/services"
)

const shutdownTimeout = 10 * time.Second

// Store là toàn bộ những gì app cần từ tầng database
type Store interface {
	services.UserStore
	services.TodoStore
	handlers.Pinger
}

// SetupAndRunApp khởi động ứng dụng Fiber và chờ tín hiệu dừng
func SetupAndRunApp() error {
	// Load biến môi trường từ file .env
	if err := config.LoadENV(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	if cfg.UsingDefaultSecret() {
		log.Warn("JWT_SECRET is not set, using the development default")
	}

	// Khởi động PostgreSQL
	db, err := database.StartPostgreSQL(context.Background(), cfg.DatabaseURI, database.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	log.Info("Connected to PostgreSQL successfully")

	// Đảm bảo kết nối với cơ sở dữ liệu được đóng sau khi ứng dụng kết thúc
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
			return
		}
		log.Info("Database connection closed")
	}()

	publisher, closePublisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	app, err := NewApp(cfg, log, database.New(db, cfg.DBStatementTimeout), publisher)
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		// Lắng nghe trên cổng chỉ định
		listenErr <- app.Listen(cfg.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}

// NewApp tạo ứng dụng Fiber với middleware và route đầy đủ
func NewApp(cfg config.Config, log *logrus.Logger, store Store, publisher services.Publisher) (*fiber.App, error) {
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire.Duration())
	authService, err := services.NewAuthService(store, tokens, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	todoService := services.NewTodoService(store, publisher)

	app := fiber.New(fiber.Config{
		AppName:               "todo-api",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
		Output: log.Out,
	}))

	metrics := middleware.NewMetrics()
	app.Use(metrics.Handler())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // client mobile gọi từ nhiều địa chỉ khác nhau
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	var limiter *middleware.RateLimiter
	if cfg.AuthRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, log)
	}

	// Thiết lập route cho ứng dụng
	router.SetupRoutes(app, router.Routes{
		Auth:        handlers.NewAuthHandler(authService, log),
		Todos:       handlers.NewTodoHandler(todoService, log),
		Health:      handlers.NewHealthHandler(store),
		Verifier:    authService,
		Metrics:     metrics,
		AuthLimiter: limiter,
	})

	// Đính kèm Swagger (nếu cần)
	config.AddSwaggerRoutes(app, cfg)

	return app, nil
}

// newPublisher kết nối MQTT nếu có MQTT_URL, nếu không thì bỏ qua sự kiện
func newPublisher(cfg config.Config, log *logrus.Logger) (services.Publisher, func(), error) {
	if cfg.MQTTURL == "" {
		return events.Nop{}, func() {}, nil
	}

	hostname, _ := os.Hostname()
	publisher, err := events.NewMQTTPublisher(cfg.MQTTURL, "todo-api-"+hostname, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Connected to MQTT broker")
	return publisher, publisher.Close, nil
}

// errorHandler xử lý lỗi mà handler trả về thay vì tự ghi response (route không tồn tại, panic, ...)
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
}
