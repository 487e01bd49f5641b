package agentrun

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/edops/edops/internal/domain/caretask"
	"github.com/edops/edops/internal/platform/auth"
	"github.com/edops/edops/internal/protocol"
)

type Handler struct {
	runs  *Service
	tasks *caretask.Service
}

func NewHandler(runs *Service, tasks *caretask.Service) *Handler {
	return &Handler{runs: runs, tasks: tasks}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	clinical := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	clinical.POST("/care-tasks/:id/protocols/:protocol", h.RunProtocol)

	read := api.Group("", auth.RequireRole("admin", "physician", "nurse", "auditor"))
	read.GET("/protocols", h.ListProtocols)
	read.GET("/agent-runs", h.ListRuns)
	read.GET("/agent-runs/ops-summary", h.GetOpsSummary)
	read.GET("/agent-runs/:id", h.GetRun)
}

// ProtocolRunResponse ties a recommendation to the run that produced it.
type ProtocolRunResponse struct {
	CareTaskID     uuid.UUID `json:"care_task_id"`
	AgentRunID     uuid.UUID `json:"agent_run_id"`
	WorkflowName   string    `json:"workflow_name"`
	Recommendation any       `json:"recommendation"`
}

func (h *Handler) RunProtocol(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid care task id")
	}
	protocolID := c.Param("protocol")
	if _, ok := WorkflowFor(protocolID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown protocol")
	}

	task, err := h.tasks.Get(c.Request().Context(), taskID)
	if errors.Is(err, caretask.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "care task not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	started := time.Now()
	recommendation, err := protocol.Evaluate(protocolID, body)
	var invalid *protocol.ValidationError
	if errors.As(err, &invalid) {
		return echo.NewHTTPError(http.StatusBadRequest, invalid.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	run, err := h.runs.RecordProtocolRun(
		c.Request().Context(), task, protocolID, body, recommendation, time.Since(started))
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}

	return c.JSON(http.StatusOK, ProtocolRunResponse{
		CareTaskID:     task.ID,
		AgentRunID:     run.ID,
		WorkflowName:   run.WorkflowName,
		Recommendation: recommendation,
	})
}

func (h *Handler) ListProtocols(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"protocols": protocol.IDs()})
}

func (h *Handler) GetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	run, err := h.runs.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "agent run not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, run)
}

func (h *Handler) ListRuns(c echo.Context) error {
	var filter ListFilter
	if v := c.QueryParam("status"); v != "" {
		filter.Status = &v
	}
	if v := c.QueryParam("workflow_name"); v != "" {
		filter.WorkflowName = &v
	}
	if v := c.QueryParam("care_task_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid care_task_id")
		}
		filter.CareTaskID = &id
	}
	if v := c.QueryParam("created_from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid created_from")
		}
		filter.CreatedFrom = &from
	}
	if v := c.QueryParam("created_to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid created_to")
		}
		filter.CreatedTo = &to
	}
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		var err error
		limit, err = strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	runs, err := h.runs.ListRecent(c.Request().Context(), filter, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (h *Handler) GetOpsSummary(c echo.Context) error {
	var workflow *string
	if v := c.QueryParam("workflow_name"); v != "" {
		workflow = &v
	}
	summary, err := h.runs.OpsSummary(c.Request().Context(), workflow)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
