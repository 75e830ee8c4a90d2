package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/alerts"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/config"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/handlers"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/repository"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/services"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/surveys"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/team"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
}

// Setup builds the full HTTP surface over the injected stores: session
// auth, the survey submission flow, alert lifecycle endpoints, and the
// team roll-up.
func Setup(log *zap.Logger, catalog *models.Catalog, stores *repository.Stores) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("pulsesession", store))
	router.Use(UserLoaderMiddleware(log, stores.Users))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Core wiring: the escalation hook feeds the alert store, the survey
	// service feeds the hook.
	escalator := services.NewEscalationService(log, stores.Alerts, stores.Users)
	surveyService := surveys.NewService(surveys.StaticCatalog{C: catalog}, stores.Surveys, stores.Scores, escalator, log)
	alertManager := alerts.NewManager(stores.Alerts, log)
	aggregator := team.NewAggregator(stores.Users, stores.Scores)

	authHandler := handlers.NewAuthHandler(log, stores.Users)
	surveysHandler := handlers.NewSurveysHandler(log, surveyService)
	alertsHandler := handlers.NewAlertsHandler(log, alertManager)
	teamHandler := handlers.NewTeamHandler(log, aggregator)
	chartsHandler := handlers.NewChartsHandler(log, surveyService)
	profileHandler := handlers.NewProfileHandler(log, stores.Users)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitErrorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", limiter, authHandler.Register)
		auth.POST("/login", limiter, authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	authorized := api.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.POST("/surveys", surveysHandler.Submit)
		authorized.GET("/surveys/today", surveysHandler.Today)

		scoreRoutes := authorized.Group("/scores")
		{
			scoreRoutes.GET("", surveysHandler.History)
			scoreRoutes.GET("/trend", surveysHandler.Trend)
			scoreRoutes.GET("/summary", surveysHandler.Summary)
			scoreRoutes.GET("/chart", chartsHandler.ScoreChart)
		}

		alertRoutes := authorized.Group("/alerts")
		{
			alertRoutes.GET("", alertsHandler.List)
			alertRoutes.POST("/read-all", alertsHandler.MarkAllRead)
			alertRoutes.POST("/:id/read", alertsHandler.MarkRead)
		}

		authorized.GET("/team/overview", teamHandler.Overview)
		authorized.PUT("/profile/notifications", profileHandler.UpdateNotifications)
	}

	return router
}
