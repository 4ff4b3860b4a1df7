package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/winauto/bridge/internal/ansible"
	"github.com/winauto/bridge/internal/deps"
)

type Server struct {
	router *gin.Engine
}

func NewServer(executor *ansible.Executor, checker *deps.Checker, logger *zap.Logger) *Server {
	s := &Server{}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(ErrorHandlingMiddleware(logger))
	s.router.Use(Cors())

	h := NewHandler(executor, checker, logger)
	s.router.POST("/execute-script", h.ExecuteScript)
	s.router.POST("/manage-services", h.ManageServices)
	s.router.POST("/system-info", h.SystemInfo)
	s.router.GET("/health", h.Health)

	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
