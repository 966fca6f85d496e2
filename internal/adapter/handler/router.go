package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	authMiddleware "github.com/collabsphere/collabsphere-ai/internal/infrastructure/http/middleware"
	"github.com/collabsphere/collabsphere-ai/pkg/config"
	"github.com/collabsphere/collabsphere-ai/pkg/jwt"
	pkgMiddleware "github.com/collabsphere/collabsphere-ai/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	jwtManager      *jwt.Manager
	meetingRepo     repositories.MeetingRepository
	participantRepo repositories.ParticipantRepository
	meetings        *Meeting
	conversations   *Conversation
	plans           *Plan
	tasks           *Task
	agents          *Agent
	users           *User
	speech          *Speech
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	jwtManager *jwt.Manager,
	meetingRepo repositories.MeetingRepository,
	participantRepo repositories.ParticipantRepository,
	meetings *Meeting,
	conversations *Conversation,
	plans *Plan,
	tasks *Task,
	agents *Agent,
	users *User,
	speech *Speech,
) *Router {
	return &Router{
		cfg:             cfg,
		jwtManager:      jwtManager,
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		meetings:        meetings,
		conversations:   conversations,
		plans:           plans,
		tasks:           tasks,
		agents:          agents,
		users:           users,
		speech:          speech,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")
	v1.Use(authMiddleware.EchoAuth(rt.jwtManager))

	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)
	rt.setupAgentRoutes(v1)
	rt.setupUserRoutes(v1)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	requireHost := pkgMiddleware.RequireMeetingHost(rt.meetingRepo)
	requireJoined := pkgMiddleware.RequireParticipantStatus(rt.participantRepo, entities.ParticipantStatusJoined)

	meetings.POST("", rt.meetings.Create)
	meetings.GET("", rt.meetings.List)
	meetings.GET("/:id", rt.meetings.Get)
	meetings.PUT("/:id", rt.meetings.Update)
	meetings.DELETE("/:id", rt.meetings.Delete)
	meetings.POST("/:id/start", rt.meetings.Start)
	meetings.POST("/:id/join", rt.meetings.Join)
	meetings.POST("/:id/leave", rt.meetings.Leave)
	meetings.GET("/:id/participants", rt.meetings.Participants)
	meetings.POST("/:id/complete", rt.meetings.Complete)
	meetings.GET("/:id/summary", rt.meetings.Summary)

	meetings.POST("/:id/chunks", rt.conversations.Append, requireJoined)
	meetings.GET("/:id/chunks", rt.conversations.List)
	meetings.GET("/:id/transcript", rt.conversations.Transcript)

	meetings.POST("/:id/plan", rt.plans.Generate, requireHost)
	meetings.GET("/:id/plan", rt.plans.Latest)
	meetings.GET("/:id/board", rt.tasks.Board)

	meetings.GET("/:id/speech", rt.speech.Connect, requireJoined)
}

func (rt *Router) setupUserRoutes(g *echo.Group) {
	users := g.Group("/users")
	users.GET("/me", rt.users.Me)
	users.PUT("/me", rt.users.UpdateMe)
}

func (rt *Router) setupTaskRoutes(g *echo.Group) {
	tasks := g.Group("/tasks")
	tasks.GET("/:id", rt.tasks.Get)
	tasks.PATCH("/:id/status", rt.tasks.Move)
	tasks.PATCH("/:id/assignee", rt.tasks.Assign)

	g.PATCH("/subtasks/:id", rt.tasks.ToggleSubtask)
}

func (rt *Router) setupAgentRoutes(g *echo.Group) {
	agents := g.Group("/agents")
	agents.POST("", rt.agents.Create)
	agents.GET("", rt.agents.List)
	agents.GET("/:id", rt.agents.Get)
	agents.PUT("/:id", rt.agents.Update)
	agents.DELETE("/:id", rt.agents.Delete)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
