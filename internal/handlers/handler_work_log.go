package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// workLogHandler handles HTTP requests for work logs.
type workLogHandler struct {
	workLogService portssvc.WorkLogSvcFacade
}

func newWorkLogHandler(ws portssvc.WorkLogSvcFacade) *workLogHandler {
	return &workLogHandler{workLogService: ws}
}

// registerWorkLogRoutes registers all work log routes.
func registerWorkLogRoutes(rg *gin.RouterGroup, ws portssvc.WorkLogSvcFacade) {
	h := newWorkLogHandler(ws)

	workLogs := rg.Group("/work-logs")
	{
		workLogs.GET("", h.listWorkLogs)
		workLogs.POST("", h.createWorkLog)
		workLogs.GET("/:workLogID", h.getWorkLog)
		workLogs.PUT("/:workLogID", h.updateWorkLog)
		workLogs.DELETE("/:workLogID", h.deleteWorkLog)
	}
}

// createWorkLog godoc
// @Summary Create a work log
// @Description Records one person's work for one client on one day.
// @Tags work-logs
// @Accept json
// @Produce json
// @Param workLog body dto.CreateWorkLogRequest true "Work log"
// @Success 201 {object} dto.WorkLogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "PERSON_NOT_FOUND or CLIENT_NOT_FOUND"
// @Failure 409 {object} dto.ErrorResponse "WORK_LOG_ALREADY_EXISTS"
// @Security BearerAuth
// @Router /work-logs [post]
func (h *workLogHandler) createWorkLog(c *gin.Context) {
	var req dto.CreateWorkLogRequest
	if !bindJSON(c, &req) {
		return
	}
	wl, err := h.workLogService.CreateWorkLog(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkLogResponse(wl))
}

// listWorkLogs godoc
// @Summary List work logs
// @Description Keyset-paginated by (workDate, id). Pass nextToken from the previous page.
// @Tags work-logs
// @Produce json
// @Param personId query string true "Person ID"
// @Param clientId query string false "Client ID"
// @Param from query string false "First work date (YYYY-MM-DD)"
// @Param to query string false "Last work date (YYYY-MM-DD)"
// @Param status query string false "draft, linked or invoiced"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor"
// @Success 200 {object} dto.ListWorkLogsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /work-logs [get]
func (h *workLogHandler) listWorkLogs(c *gin.Context) {
	var query dto.ListWorkLogsQuery
	if !bindQuery(c, &query) {
		return
	}
	logs, next, err := h.workLogService.ListWorkLogs(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkLogsResponse(logs, next))
}

// getWorkLog godoc
// @Summary Get a work log
// @Tags work-logs
// @Produce json
// @Param workLogID path string true "Work log ID"
// @Success 200 {object} dto.WorkLogResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /work-logs/{workLogID} [get]
func (h *workLogHandler) getWorkLog(c *gin.Context) {
	wl, err := h.workLogService.GetWorkLogByID(c.Request.Context(), c.Param("workLogID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkLogResponse(wl))
}

// updateWorkLog godoc
// @Summary Update a work log
// @Description Partial update. A supplied items array replaces every item; notes may be set to null.
// @Tags work-logs
// @Accept json
// @Produce json
// @Param workLogID path string true "Work log ID"
// @Param workLog body dto.UpdateWorkLogRequest true "Fields to change"
// @Success 200 {object} dto.WorkLogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "WORK_LOG_LOCKED or WORK_LOG_ALREADY_EXISTS"
// @Security BearerAuth
// @Router /work-logs/{workLogID} [put]
func (h *workLogHandler) updateWorkLog(c *gin.Context) {
	var req dto.UpdateWorkLogRequest
	if !bindJSON(c, &req) {
		return
	}
	wl, err := h.workLogService.UpdateWorkLog(c.Request.Context(), c.Param("workLogID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkLogResponse(wl))
}

// deleteWorkLog godoc
// @Summary Delete a work log
// @Tags work-logs
// @Produce json
// @Param workLogID path string true "Work log ID"
// @Success 200 {object} dto.OkResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "WORK_LOG_LOCKED"
// @Security BearerAuth
// @Router /work-logs/{workLogID} [delete]
func (h *workLogHandler) deleteWorkLog(c *gin.Context) {
	if err := h.workLogService.DeleteWorkLog(c.Request.Context(), c.Param("workLogID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OkResponse{Ok: true})
}
