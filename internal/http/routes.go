package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskboard.com/taskboard/internal/http/middlewares"
)

// Register mounts the API on e. Shutting down e's server closes the open
// board event streams so that shutdown does not wait on them.
func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Server.RegisterOnShutdown(h.CloseStreams)

	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	e.Use(middleware.SessionToken())

	e.POST("/users", h.Register)
	e.GET("/session", h.CurrentUser)
	e.POST("/session", h.Login)
	e.DELETE("/session", h.Logout)

	e.GET("/board", h.GetBoard)
	e.GET("/board/events", h.BoardEvents)
	e.GET("/board/search", h.SearchTasks)
	e.POST("/board/moves", h.MoveTask)
	e.POST("/board/:column/tasks", h.AddTask)
	e.DELETE("/board/:column/tasks/:id", h.DeleteTask)
	e.POST("/board/:column/tasks/:id/pin", h.TogglePin)
	e.POST("/board/:column/tasks/:id/complete", h.MarkCompleted)
	e.PUT("/tasks/:id", h.UpdateTask)

	e.GET("/report", h.GetReport)
}
