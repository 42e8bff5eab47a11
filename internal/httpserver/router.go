package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/handler"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/mq"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Projects  *handler.ProjectHandler
	Rooms     *handler.RoomHandler
	Tasks     *handler.TaskHandler
	Vendors   *handler.VendorHandler
	Payments  *handler.PaymentHandler
	Meetings  *handler.MeetingHandler
	Members   *handler.MemberHandler
	Contacts  *handler.ContactHandler
	Dashboard *handler.DashboardHandler
	Files     *handler.FileHandler
}

func NewRouter(h Handlers, jwtSecret string, logger *zap.Logger, db *pgxpool.Pool, consumer *mq.Consumer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handler.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if consumer != nil && !consumer.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/register", h.Auth.Register)
	r.POST("/api/auth/login", h.Auth.Login)

	api := r.Group("/api", handler.AuthRequired(jwtSecret))

	api.GET("/projects", h.Projects.List)
	api.POST("/projects", h.Projects.Create)
	api.GET("/projects/:projectId", h.Projects.Get)
	api.PUT("/projects/:projectId", h.Projects.Update)
	api.DELETE("/projects/:projectId", h.Projects.Delete)

	p := api.Group("/projects/:projectId")

	p.GET("/dashboard", h.Dashboard.Get)

	p.GET("/rooms", h.Rooms.List)
	p.POST("/rooms", h.Rooms.Create)
	p.PUT("/rooms/:id", h.Rooms.Update)
	p.DELETE("/rooms/:id", h.Rooms.Delete)

	p.GET("/tasks", h.Tasks.List)
	p.POST("/tasks", h.Tasks.Create)
	p.PUT("/tasks/:id", h.Tasks.Update)
	p.DELETE("/tasks/:id", h.Tasks.Delete)

	p.GET("/vendors", h.Vendors.List)
	p.POST("/vendors", h.Vendors.Create)
	p.PUT("/vendors/:id", h.Vendors.Update)
	p.DELETE("/vendors/:id", h.Vendors.Delete)

	p.GET("/payments", h.Payments.List)
	p.POST("/payments", h.Payments.Create)
	p.PUT("/payments/:id", h.Payments.Update)
	p.DELETE("/payments/:id", h.Payments.Delete)

	p.GET("/meetings", h.Meetings.List)
	p.POST("/meetings", h.Meetings.Create)
	p.PUT("/meetings/:id", h.Meetings.Update)
	p.DELETE("/meetings/:id", h.Meetings.Delete)

	p.GET("/members", h.Members.List)
	p.POST("/members", h.Members.Add)
	p.DELETE("/members/:userId", h.Members.Remove)
	p.DELETE("/invitations/:id", h.Members.CancelInvitation)

	p.GET("/contacts", h.Contacts.List)
	p.POST("/contacts", h.Contacts.Create)
	p.PUT("/contacts/:id", h.Contacts.Update)
	p.DELETE("/contacts/:id", h.Contacts.Delete)

	api.POST("/files", h.Files.Upload)
	api.GET("/files/:id", h.Files.Serve)
	api.DELETE("/files/:id", h.Files.Delete)

	return r
}
