package app

import (
	"context"
	"errors"

	"food-delivery/config"
	"food-delivery/controllers"
	"food-delivery/libs"
	"food-delivery/metrics"
	"food-delivery/middleware"
	"food-delivery/models"
	"food-delivery/notifications"
	"food-delivery/realtime"
	"food-delivery/repositories"
	"food-delivery/routes"
	"food-delivery/services"
	"food-delivery/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const Version = "1.0.0"

// App owns the router and every long-lived resource behind it.
type App struct {
	Router *gin.Engine

	db         *pgxpool.Pool
	redis      *redis.Client
	dispatcher *notifications.Dispatcher
	relay      *notifications.Relay
}

// New connects the backing services and wires the HTTP stack. Redis, SMTP
// and Cloudinary are optional.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.IsProduction() || cfg.Serverless {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	redisClient := config.ConnectRedis(ctx, cfg)

	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTRefreshExpiry)

	users := repositories.NewUserRepository(db)
	refreshTokens := repositories.NewRefreshTokenRepository(db)
	resets := repositories.NewPasswordResetRepository(db)
	categories := repositories.NewCategoryRepository(db)
	restaurants := repositories.NewRestaurantRepository(db)
	menus := repositories.NewMenuRepository(db)
	addresses := repositories.NewAddressRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)
	menuCache := repositories.NewRedisMenuCache(redisClient)

	var (
		orderMailer notifications.OrderMailer
		codeSender  services.CodeSender
	)
	if mailer, err := notifications.NewEmailService(cfg); err == nil {
		orderMailer = mailer
		codeSender = mailer
	} else {
		log.WithError(err).Warn("Email disabled")
	}

	var uploader services.ImageUploader
	if cld, err := libs.NewCloudinaryService(cfg); err == nil {
		uploader = cld
	} else {
		log.WithError(err).Warn("Image uploads disabled")
	}

	origins := middleware.AllowedOrigins(cfg.OriginURL)

	var orderService *services.OrderService
	hub := realtime.NewHub(realtime.AuthorizerFunc(func(ctx context.Context, actor models.Actor, channel string) error {
		return orderService.CanSubscribe(ctx, actor, channel)
	}), issuer, origins)

	a := &App{db: db, redis: redisClient}

	// With Redis every instance publishes to Redis and relays back into its
	// own hub, so subscribers on any instance receive every event. While the
	// relay is down events go to the local hub only.
	var publisher notifications.Publisher = hub
	if redisClient != nil {
		a.relay = notifications.NewRelay(redisClient, hub)
		publisher = notifications.NewRelayedPublisher(notifications.NewRedisPublisher(redisClient), hub, a.relay)
	}

	a.dispatcher = notifications.NewDispatcher(publisher, orderMailer, notifications.Options{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
		Timeout:   cfg.NotifyTimeout,
	})

	orderService = services.NewOrderService(orders, carts, addresses, restaurants, users, a.dispatcher)
	userService := services.NewUserService(users, refreshTokens)
	authService := services.NewAuthService(users, refreshTokens, issuer)

	if cfg.AdminAutoCreate {
		if _, err := authService.EnsureAdmin(ctx, cfg.AdminPhone, cfg.AdminPassword, cfg.AdminName); err != nil {
			log.WithError(err).Error("Admin bootstrap failed")
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.PrometheusMiddleware())
	router.Use(middleware.CORSMiddleware(origins))
	router.MaxMultipartMemory = cfg.MaxUploadSize

	routes.SetupRoutes(router, routes.Handlers{
		Tokens: issuer,
		Public: controllers.NewPublicController(db, Version, cfg.AppEnv),
		Auth: controllers.NewAuthController(
			authService,
			services.NewPasswordResetService(users, resets, refreshTokens, codeSender, !cfg.IsProduction()),
		),
		Profile:    controllers.NewProfileController(userService, uploader, cfg.MaxUploadSize),
		Users:      controllers.NewUserController(userService),
		Addresses:  controllers.NewAddressController(services.NewAddressService(addresses)),
		Categories: controllers.NewCategoryController(services.NewCategoryService(categories)),
		Restaurant: controllers.NewRestaurantController(services.NewRestaurantService(restaurants, users, menuCache), orderService),
		Menu:       controllers.NewMenuController(services.NewMenuService(menus, restaurants, menuCache, uploader), cfg.MaxUploadSize),
		Cart:       controllers.NewCartController(services.NewCartService(carts, menus, restaurants)),
		Orders:     controllers.NewOrderController(orderService),
		History:    controllers.NewHistoryController(orderService),
		WebSocket:  hub.HandleWebSocket,
	})

	a.Router = router
	return a, nil
}

// Run blocks relaying Redis notifications into the local hub until ctx is
// done, resubscribing after Redis failures. Without Redis it only waits.
func (a *App) Run(ctx context.Context) error {
	if a.relay == nil {
		<-ctx.Done()
		return nil
	}
	err := a.relay.Supervise(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close drains queued notifications before releasing connections.
func (a *App) Close() {
	a.dispatcher.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis")
		}
	}
	a.db.Close()
}
