package api

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/winauto/bridge/internal/ansible"
	"github.com/winauto/bridge/internal/deps"
	"github.com/winauto/bridge/internal/models"
)

// Handler serves the bridge endpoints. Stateless; every request is an
// independent engine run.
type Handler struct {
	executor *ansible.Executor
	checker  *deps.Checker
	logger   *zap.Logger
}

func NewHandler(executor *ansible.Executor, checker *deps.Checker, logger *zap.Logger) *Handler {
	return &Handler{
		executor: executor,
		checker:  checker,
		logger:   logger,
	}
}

// ExecuteScript handles POST /execute-script.
func (h *Handler) ExecuteScript(c *gin.Context) {
	var req models.ExecuteScriptRequest
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

	if h.logger.Core().Enabled(zapcore.DebugLevel) {
		h.logger.Debug("execute-script request", zap.String("dump", spew.Sdump(req)))
	}

	result, err := h.executor.Execute(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(statusCode(result.Status), result)
}

func statusCode(status models.ExecutionStatus) int {
	switch status {
	case models.ExecutionStatusSuccess:
		return http.StatusOK
	case models.ExecutionStatusTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
