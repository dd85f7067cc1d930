package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "devsocial/internal/adapters/database"
	"devsocial/internal/adapters/httpapi"
	"devsocial/internal/adapters/memory"
	redisadapter "devsocial/internal/adapters/redis"
	"devsocial/internal/config"
	"devsocial/internal/core/activity"
	activityapp "devsocial/internal/core/activity/service"
	"devsocial/internal/core/post"
	postapp "devsocial/internal/core/post/service"
	"devsocial/internal/core/user"
	userapp "devsocial/internal/core/user/service"
	postPort "devsocial/internal/ports/post"
	"devsocial/internal/workers"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	config.Init() // بارگذاری تنظیمات از .env

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&post.Post{},
		&activity.Event{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}

	config.Logger.Info("✅ Database migrations completed")

	// اتصال به Redis
	config.InitRedis()

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(config.Logger)

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)            // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)            // آداپتر خروجی
	eventRepo := dbadapter.NewActivityRepositoryDatabase(config.DB)       // آداپتر خروجی
	activityFeed := redisadapter.NewActivityFeedRedis(config.RedisClient) // آداپتر خروجی

	activitySvc := activityapp.NewActivityService(eventRepo, activityFeed, config.Logger)          // یوزکیس/سرویس
	userSvc := userapp.NewUserService(userRepo, jwtSecret, config.Logger)                          // یوزکیس/سرویس
	postSvc := postapp.NewPostService(postRepo, newLocker(), userRepo, activitySvc, config.Logger) // یوزکیس/سرویس
	r := httpapi.SetupRoutes(userSvc, postSvc, activitySvc, jwtSecret)                             // تزریق یوزکیس به آداپتر ورودی

	activityWorker := workers.NewActivityWorker(
		eventRepo,
		activityFeed,
		config.GetEnvInt("BATCH_SIZE", 100),
		config.GetEnvDuration("ACTIVITY_POLL_INTERVAL", time.Second),
		config.Logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// اجرای worker در پس‌زمینه
	go activityWorker.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + config.GetEnv("APP_PORT", "8080"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	config.Logger.Info("App is running...", zap.String("addr", srv.Addr))

	// سرور تا رسیدن SIGINT/SIGTERM بلوکینگ است، سپس منابع با defer بسته می‌شوند
	if err := serve(ctx, srv, shutdownTimeout, config.Logger); err != nil {
		config.Logger.Error("Server stopped with error:", zap.Error(err))
	}
}

// newLocker picks the lock that serializes writes to a single post. The Redis
// lock is needed as soon as more than one instance serves traffic.
func newLocker() postPort.Locker {
	if config.GetEnv("POST_LOCK_BACKEND", "redis") == "memory" {
		config.Logger.Info("using in-process post locks")
		return memory.NewPostLocker(0)
	}
	return redisadapter.NewPostLocker(
		config.RedisClient,
		config.GetEnvDuration("POST_LOCK_TTL", 5*time.Second),
		config.Logger,
	)
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger) {
	// بستن اتصال به Redis
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	// بستن اتصال دیتابیس
	sqlDB, err := config.DB.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
