package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard.com/taskboard/internal/constants"
	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/http/validators"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/services"
)

type Handler struct {
	boardService *services.BoardService
	authService  *services.AuthService

	// streams lives as long as the server; cancelling it ends every open
	// board event stream.
	streams      context.Context
	closeStreams context.CancelFunc
}

func NewHandler(boardService *services.BoardService, authService *services.AuthService) *Handler {
	streams, closeStreams := context.WithCancel(context.Background())
	return &Handler{
		boardService: boardService,
		authService:  authService,
		streams:      streams,
		closeStreams: closeStreams,
	}
}

// CloseStreams ends every open board event stream and refuses new ones.
func (h *Handler) CloseStreams() {
	h.closeStreams()
}

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return httpError(err)
	}

	identity, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, identity)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return httpError(err)
	}

	signedIn, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, signedIn)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CurrentUser(c echo.Context) error {
	identity, err := h.authService.Current(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, identity)
}

func (h *Handler) GetBoard(c echo.Context) error {
	columns, err := h.boardService.Board(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, columns)
}

func (h *Handler) AddTask(c echo.Context) error {
	column := constants.Column(c.Param("column"))
	if err := validators.ValidateColumn(column); err != nil {
		return httpError(err)
	}

	var req dto.TaskRequestData
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return httpError(err)
	}

	task, err := h.boardService.AddTask(c.Request().Context(), column, draftFrom(req))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.TaskRequestData
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return httpError(err)
	}

	task, err := h.boardService.UpdateTask(c.Request().Context(), c.Param("id"), draftFrom(req))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	columns, err := h.boardService.DeleteTask(c.Request().Context(), constants.Column(c.Param("column")), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, columns)
}

func (h *Handler) TogglePin(c echo.Context) error {
	columns, err := h.boardService.TogglePin(c.Request().Context(), constants.Column(c.Param("column")), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, columns)
}

func (h *Handler) MarkCompleted(c echo.Context) error {
	columns, err := h.boardService.MarkCompleted(c.Request().Context(), constants.Column(c.Param("column")), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, columns)
}

func (h *Handler) MoveTask(c echo.Context) error {
	var req dto.MoveTaskRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateMoveTaskRequest(&req); err != nil {
		return httpError(err)
	}

	columns, err := h.boardService.MoveTask(c.Request().Context(), services.Move(req))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, columns)
}

func (h *Handler) SearchTasks(c echo.Context) error {
	match, err := h.boardService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, match)
}

func (h *Handler) GetReport(c echo.Context) error {
	report, err := h.boardService.Report(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// BoardEvents streams the signed-in user's board as server-sent events, once
// on connect and again whenever the stored board or session changes. The
// stream ends when the client goes away or the server shuts down.
func (h *Handler) BoardEvents(c echo.Context) error {
	if _, err := h.boardService.Board(c.Request().Context()); err != nil {
		return httpError(err)
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	stop := context.AfterFunc(h.streams, cancel)
	defer stop()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	err := h.boardService.Watch(ctx, func(user string, columns model.Columns) {
		payload, err := sonic.Marshal(echo.Map{"user": user, "board": columns})
		if err != nil {
			log.WithError(err).Error("encode board event")
			return
		}
		if _, err := fmt.Fprintf(res, "event: board\ndata: %s\n\n", payload); err != nil {
			return
		}
		res.Flush()
	})
	if err != nil {
		log.WithError(err).Error("board event stream failed")
	}
	return nil
}

func draftFrom(req dto.TaskRequestData) model.Draft {
	return model.Draft{
		Title:       req.Title,
		Description: req.Description,
		DateTime:    req.DateTime,
		FileName:    req.FileName,
		Priority:    req.Priority,
	}
}

func httpError(err error) error {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	return echo.NewHTTPError(status, apperrors.PublicMessage(err))
}
