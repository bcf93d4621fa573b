package main

import (
	"database/sql"
	"net/http"

	"hampernest-be/internal/cart"
	"hampernest-be/internal/checkout"
	"hampernest-be/internal/config"
	"hampernest-be/internal/coupon"
	"hampernest-be/internal/db"
	"hampernest-be/internal/events"
	"hampernest-be/internal/httpx"
	"hampernest-be/internal/logger"
	"hampernest-be/internal/metrics"
	"hampernest-be/internal/order"
	"hampernest-be/internal/payment"
	"hampernest-be/internal/product"
	"hampernest-be/internal/review"
	"hampernest-be/internal/user"
	"hampernest-be/internal/wishlist"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := initDBFunc(cfg)
	defer database.Close()

	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()

	router := newServer(cfg, database, publisher)

	log.Info("server listening", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB, publisher *events.Publisher) http.Handler {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	gateway := payment.NewSimulatedGateway()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)

	cartStore := cart.NewRedisStore(rdb, cfg.CartTTL)
	cartSvc := cart.NewService(cartStore, productRepo)

	couponRepo := coupon.NewRepository(database)
	couponSvc := coupon.NewService(couponRepo)

	estimator := checkout.FlatEstimator{
		TaxRate:          cfg.TaxRate,
		FlatShipping:     cfg.FlatShipping,
		FreeShippingOver: cfg.FreeShippingOver,
	}
	checkoutSvc := checkout.NewService(productRepo, estimator, couponSvc, cfg.Currency)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway, publisher)

	wishlistRepo := wishlist.NewRepository(database)
	reviewRepo := review.NewRepository(database)

	return httpx.NewRouter(httpx.Deps{
		Users:    userSvc,
		Products: productRepo,
		Carts:    cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Coupons:  couponSvc,
		Wishlist: wishlistRepo,
		Reviews:  reviewRepo,
		Gateway:  gateway,
		Metrics:  metrics.NewRegistry(),
	})
}
