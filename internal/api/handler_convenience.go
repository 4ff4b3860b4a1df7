package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/winauto/bridge/internal/models"
)

const (
	defaultServiceTimeout = 120
	defaultOutputPath     = `C:\temp\ps-output`
)

// ManageServices handles POST /manage-services, a convenience wrapper that
// runs the ServiceManagement action and reshapes the per-host results.
func (h *Handler) ManageServices(c *gin.Context) {
	var req models.ManageServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultServiceTimeout
	}

	execReq := models.ExecuteScriptRequest{
		Targets: req.Targets,
		Action:  models.ActionServiceManagement,
		Parameters: models.JSONMap{
			"serviceName":   req.ServiceName,
			"serviceAction": req.Action,
		},
		Options: models.ExecutionOptions{Timeout: timeout},
	}

	result, err := h.executor.Execute(c.Request.Context(), &execReq)
	if err != nil {
		c.Error(err)
		return
	}

	serviceResults := make([]models.ServiceResult, 0, len(result.Results))
	for _, hr := range result.Results {
		serviceResults = append(serviceResults, models.ServiceResult{
			Host:           hr.Host,
			ServiceName:    req.ServiceName,
			PreviousStatus: "unknown",
			CurrentStatus:  "unknown",
			Changed:        hr.Changed,
			Message:        hr.Output,
		})
	}

	c.JSON(statusCode(result.Status), gin.H{
		"success":     result.Success,
		"executionId": result.ExecutionID,
		"results":     serviceResults,
	})
}

// SystemInfo handles POST /system-info, a convenience wrapper around the
// SystemInfo action.
func (h *Handler) SystemInfo(c *gin.Context) {
	var req models.SystemInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath
	}

	execReq := models.ExecuteScriptRequest{
		Targets:    req.Targets,
		Action:     models.ActionSystemInfo,
		Parameters: models.JSONMap{"outputPath": outputPath},
	}

	result, err := h.executor.Execute(c.Request.Context(), &execReq)
	if err != nil {
		c.Error(err)
		return
	}

	systemResults := make([]models.SystemInfoResult, 0, len(result.Results))
	for _, hr := range result.Results {
		systemResults = append(systemResults, models.SystemInfoResult{
			Host: hr.Host,
			SystemInfo: models.JSONMap{
				"computerName": hr.Host,
				"os":           "Windows",
				"report":       hr.Output,
			},
			DiskInfo:   []any{},
			ReportPath: outputPath,
		})
	}

	c.JSON(statusCode(result.Status), gin.H{
		"success":     result.Success,
		"executionId": result.ExecutionID,
		"results":     systemResults,
	})
}
