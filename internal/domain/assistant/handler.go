package assistant

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/edops/edops/internal/domain/caretask"
	"github.com/edops/edops/internal/platform/auth"
)

type Handler struct {
	turns *Service
}

func NewHandler(turns *Service) *Handler {
	return &Handler{turns: turns}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	chat := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	chat.POST("/care-tasks/:id/assistant/chat", h.ChatTurn)
}

func (h *Handler) ChatTurn(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid care task id")
	}
	var req TurnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	resp, err := h.turns.HandleTurn(c.Request().Context(), taskID, req)
	if errors.Is(err, caretask.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "care task not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
