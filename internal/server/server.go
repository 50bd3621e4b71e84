package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/hotelproducts/internal/config"
	hoteldomain "github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"github.com/smallbiznis/hotelproducts/internal/observability"
	obsmiddleware "github.com/smallbiznis/hotelproducts/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/hotelproducts/internal/observability/metrics"
	obstracing "github.com/smallbiznis/hotelproducts/internal/observability/tracing"
	"github.com/smallbiznis/hotelproducts/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParams struct {
	fx.In

	Cfg         config.Config
	ObsCfg      observability.Config
	HTTPMetrics *obsmetrics.HTTPMetrics `optional:"true"`
	Registry    *prometheus.Registry    `optional:"true"`
}

func NewEngine(p EngineParams) *gin.Engine {
	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           p.ObsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(corsMiddleware(p.Cfg.CORS))
	r.Use(obstracing.GinMiddleware(obstracing.MiddlewareConfig{
		Store:           p.Cfg.Hotel.Store,
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(p.HTTPMetrics))
	r.Use(RecoveryMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obsmetrics.Gatherer(p.Registry), promhttp.HandlerOpts{})))
	r.NoRoute(notFoundHandler)

	return r
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", obsmiddleware.HeaderRequestID, obsmiddleware.HeaderCorrelationID},
		ExposeHeaders:    []string{obsmiddleware.HeaderRequestID, obsmiddleware.HeaderCorrelationID, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsCfg)
}

func registerGin(p EngineParams) *gin.Engine {
	return NewEngine(p)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	hotelSvc     hoteldomain.Service
	hotelLimiter *ratelimit.HotelReadLimiter
	obsMetrics   *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	HotelSvc     hoteldomain.Service
	HotelLimiter *ratelimit.HotelReadLimiter `optional:"true"`
	ObsMetrics   *obsmetrics.Metrics         `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		hotelSvc:     p.HotelSvc,
		hotelLimiter: p.HotelLimiter,
		obsMetrics:   p.ObsMetrics,
	}

	svc.registerHotelRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerHotelRoutes() {
	hotel := s.engine.Group("/hotel", s.HotelRateLimit())

	hotel.GET("", s.GetHotelProducts)
	hotel.GET("/products", s.GetHotelProducts)
	hotel.GET("/reservations", s.GetHotelReservations)
}
