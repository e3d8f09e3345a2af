// Package app assembles the services and the HTTP router from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"theroom/internal/config"
	"theroom/internal/domain/room"
	"theroom/internal/domain/sitepage"
	"theroom/internal/domain/staticpage"
	"theroom/internal/domain/subscription"
	"theroom/internal/domain/tenant"
	"theroom/internal/domain/theme"
	"theroom/internal/mail"
	"theroom/internal/media"
	"theroom/internal/middleware"
	"theroom/internal/observability"
	"theroom/internal/pkg/jwt"
	"theroom/internal/pkg/localized"
	"theroom/internal/pkg/response"
)

// Models lists every table the API owns, in migration order.
func Models() []any {
	return []any{
		&tenant.Tenant{},
		&room.Room{},
		&media.Upload{},
		&staticpage.Page{},
		&sitepage.WebsitePage{},
		&theme.Theme{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Registry *prometheus.Registry

	Tenants      *tenant.Service
	Rooms        *room.Service
	Media        *media.Service
	StaticPages  *staticpage.Service
	SitePages    *sitepage.Service
	Themes       *theme.Service
	Subscription *subscription.Service
	Reminder     *subscription.Reminder

	jwt     *jwt.Service
	limiter *middleware.IPRateLimiter
}

type Options struct {
	Mailer mail.Sender
	// Redis backs the reminder ledger. Nil falls back to process memory.
	Redis    *redis.Client
	Registry *prometheus.Registry
}

func New(cfg *config.Config, db *gorm.DB, opts Options) (*App, error) {
	langs, err := localized.NewLanguages(cfg.SupportedLanguages, cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}
	if opts.Mailer == nil {
		opts.Mailer = mail.New(cfg.Mail)
	}

	a := &App{
		Config:   cfg,
		DB:       db,
		Registry: opts.Registry,
		jwt:      jwt.New(cfg.JWTSecret, cfg.SessionTTL),
		limiter:  middleware.NewIPRateLimiter(cfg.AuthRateLimit),
	}

	tenants := tenant.NewRepository(db)
	a.Media = media.NewService(media.NewRepository(db), cfg.UploadDir, cfg.UploadURLBase)
	a.SitePages = sitepage.NewService(sitepage.NewRepository(db), langs)
	a.Tenants = tenant.NewService(tenants, a.jwt, opts.Mailer, langs, a.SitePages, tenant.Settings{
		ClientURL:      cfg.ClientURL,
		VerifyTokenTTL: cfg.VerifyTokenTTL,
		ResetTokenTTL:  cfg.ResetTokenTTL,
		TrialPeriod:    cfg.TrialPeriod,
	})
	a.Rooms = room.NewService(room.NewRepository(db), a.Media, langs)
	a.StaticPages = staticpage.NewService(staticpage.NewRepository(db), a.Media, langs)
	a.Themes = theme.NewService(theme.NewRepository(db))
	a.Subscription = subscription.NewService(tenants)

	var ledger subscription.Ledger = subscription.NewMemoryLedger()
	if opts.Redis != nil {
		ledger = subscription.NewRedisLedger(opts.Redis)
	}
	a.Reminder = subscription.NewReminder(tenants, opts.Mailer, ledger, cfg.ReminderDaysBefore, cfg.ClientURL)
	return a, nil
}

// Router builds the gin engine with every route mounted under /api.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(a.Config.ClientURL, a.Config.CORSAllowedOrigins),
		middleware.Metrics(),
	)
	r.Static(a.Config.UploadURLBase, a.Config.UploadDir)
	if a.Registry != nil {
		r.GET("/metrics", gin.WrapH(observability.MetricsHandler(a.Registry)))
	}

	api := r.Group("/api")
	api.GET("/health", a.health)

	defaultLang := a.Config.DefaultLanguage
	tenantHandler := tenant.NewHandler(a.Tenants)
	subscriptionHandler := subscription.NewHandler(a.Subscription)

	tenantHandler.RegisterPublicRoutes(api, middleware.RateLimit(a.limiter))
	subscriptionHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.JWTAuth(a.jwt))
	{
		tenantHandler.RegisterProtectedRoutes(protected)
		subscriptionHandler.RegisterProtectedRoutes(protected)
		room.NewHandler(a.Rooms, defaultLang).RegisterRoutes(protected)
		staticpage.NewHandler(a.StaticPages, defaultLang).RegisterRoutes(protected)
		sitepage.NewHandler(a.SitePages).RegisterRoutes(protected)
		theme.NewHandler(a.Themes).RegisterRoutes(protected)
		media.NewHandler(a.Media).RegisterRoutes(protected)
	}
	return r
}

func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_FAILURE", "database unavailable")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
