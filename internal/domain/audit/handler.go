package audit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/edops/edops/internal/domain/caretask"
	"github.com/edops/edops/internal/platform/auth"
)

type Handler struct {
	audits *Service
	tasks  *caretask.Service
}

func NewHandler(audits *Service, tasks *caretask.Service) *Handler {
	return &Handler{audits: audits, tasks: tasks}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	review := api.Group("", auth.RequireRole("admin", "physician", "auditor"))
	review.POST("/care-tasks/:id/triage/audit", h.UpsertTriage)
	review.POST("/care-tasks/:id/screening/audit", h.UpsertScreening)
	review.POST("/care-tasks/:id/medicolegal/audit", h.UpsertMedicolegal)
	review.POST("/care-tasks/:id/scasest/audit", h.UpsertScasest)
	review.POST("/care-tasks/:id/cardio-risk/audit", h.UpsertCardioRisk)
	review.POST("/care-tasks/:id/resuscitation/audit", h.UpsertResuscitation)

	read := api.Group("", auth.RequireRole("admin", "physician", "nurse", "auditor"))
	read.GET("/care-tasks/quality/scorecard", h.GetScorecard)
	read.GET("/care-tasks/:id/triage/audit", h.ListTriage)
	read.GET("/care-tasks/:id/triage/audit/summary", h.GetTriageSummary)
	read.GET("/care-tasks/:id/screening/audit", h.ListScreening)
	read.GET("/care-tasks/:id/screening/audit/summary", h.GetScreeningSummary)
	read.GET("/care-tasks/:id/medicolegal/audit", h.ListMedicolegal)
	read.GET("/care-tasks/:id/medicolegal/audit/summary", h.GetMedicolegalSummary)
	read.GET("/care-tasks/:id/scasest/audit", h.ListScasest)
	read.GET("/care-tasks/:id/scasest/audit/summary", h.GetScasestSummary)
	read.GET("/care-tasks/:id/cardio-risk/audit", h.ListCardioRisk)
	read.GET("/care-tasks/:id/cardio-risk/audit/summary", h.GetCardioRiskSummary)
	read.GET("/care-tasks/:id/resuscitation/audit", h.ListResuscitation)
	read.GET("/care-tasks/:id/resuscitation/audit/summary", h.GetResuscitationSummary)
}

// taskID resolves the care task path parameter and verifies the task exists.
func (h *Handler) taskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid care task id")
	}
	if _, err := h.tasks.Get(c.Request().Context(), id); err != nil {
		if errors.Is(err, caretask.ErrNotFound) {
			return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "care task not found")
		}
		return uuid.Nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return id, nil
}

func listLimit(c echo.Context) (int, error) {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	return limit, nil
}

func auditError(err error) error {
	switch {
	case errors.Is(err, ErrRunNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrWorkflowMismatch),
		errors.Is(err, ErrRunTaskMismatch),
		errors.Is(err, ErrInvalidReview):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) UpsertTriage(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	var req TriageAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	audit, err := h.audits.UpsertTriageAudit(c.Request().Context(), id, req)
	if err != nil {
		return auditError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListTriage(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	items, err := h.audits.ListTriageAudits(c.Request().Context(), id, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTriageSummary(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	summary, err := h.audits.TriageSummary(c.Request().Context(), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) UpsertScreening(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	var req ScreeningAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	audit, err := h.audits.UpsertScreeningAudit(c.Request().Context(), id, req)
	if err != nil {
		return auditError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListScreening(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	items, err := h.audits.ListScreeningAudits(c.Request().Context(), id, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetScreeningSummary(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	summary, err := h.audits.ScreeningSummary(c.Request().Context(), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) UpsertMedicolegal(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	var req MedicolegalAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	audit, err := h.audits.UpsertMedicolegalAudit(c.Request().Context(), id, req)
	if err != nil {
		return auditError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListMedicolegal(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	items, err := h.audits.ListMedicolegalAudits(c.Request().Context(), id, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMedicolegalSummary(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	summary, err := h.audits.MedicolegalSummary(c.Request().Context(), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) UpsertScasest(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	var req ScasestAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	audit, err := h.audits.UpsertScasestAudit(c.Request().Context(), id, req)
	if err != nil {
		return auditError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListScasest(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	items, err := h.audits.ListScasestAudits(c.Request().Context(), id, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetScasestSummary(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	summary, err := h.audits.ScasestSummary(c.Request().Context(), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) UpsertCardioRisk(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	var req CardioRiskAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	audit, err := h.audits.UpsertCardioRiskAudit(c.Request().Context(), id, req)
	if err != nil {
		return auditError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListCardioRisk(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	items, err := h.audits.ListCardioRiskAudits(c.Request().Context(), id, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetCardioRiskSummary(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	summary, err := h.audits.CardioRiskSummary(c.Request().Context(), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) UpsertResuscitation(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	var req ResuscitationAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	audit, err := h.audits.UpsertResuscitationAudit(c.Request().Context(), id, req)
	if err != nil {
		return auditError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListResuscitation(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	items, err := h.audits.ListResuscitationAudits(c.Request().Context(), id, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetResuscitationSummary(c echo.Context) error {
	id, err := h.taskID(c)
	if err != nil {
		return err
	}
	summary, err := h.audits.ResuscitationSummary(c.Request().Context(), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetScorecard(c echo.Context) error {
	card, err := h.audits.QualityScorecard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, card)
}
