package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/people-notes-backend/internal/http/handlers"
	httpMW "github.com/yungbote/people-notes-backend/internal/http/middleware"
	"github.com/yungbote/people-notes-backend/internal/observability"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
	"github.com/yungbote/people-notes-backend/internal/platform/ratelimit"
)

type RouterConfig struct {
	HomeHandler   *httpH.HomeHandler
	HealthHandler *httpH.HealthHandler
	PeopleHandler *httpH.PeopleHandler
	NoteHandler   *httpH.NoteHandler

	Log         *logger.Logger
	Metrics     *observability.Metrics
	Limiter     ratelimit.Limiter
	CORSOrigins []string
	// ServiceName labels otelgin spans. Empty disables HTTP tracing.
	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HomeHandler != nil {
		r.GET("/", cfg.HomeHandler.Home)
	}
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.RateLimit(cfg.Limiter, cfg.Metrics, cfg.Log))
	{
		// People
		if cfg.PeopleHandler != nil {
			api.GET("/people", cfg.PeopleHandler.ReadAll)
			api.POST("/people", cfg.PeopleHandler.Create)
			api.GET("/people/:lname", cfg.PeopleHandler.ReadOne)
			api.PUT("/people/:lname", cfg.PeopleHandler.Update)
			api.DELETE("/people/:lname", cfg.PeopleHandler.Delete)
		}

		// Notes
		if cfg.NoteHandler != nil {
			api.POST("/notes", cfg.NoteHandler.Create)
			api.GET("/notes/:note_id", cfg.NoteHandler.ReadOne)
			api.PUT("/notes/:note_id", cfg.NoteHandler.Update)
			api.DELETE("/notes/:note_id", cfg.NoteHandler.Delete)
		}
	}

	return r
}
