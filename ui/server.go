package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bayeslab/internal"
)

// Server serves the rendered lab report so the document can be read in a
// browser.
type Server struct {
	router *gin.Engine
	outDir string
	logger *internal.Logger
}

// NewServer creates a report viewer over an output directory
func NewServer(outDir, ginMode string, logger *internal.Logger) *Server {
	gin.SetMode(ginMode)
	s := &Server{
		router: gin.Default(),
		outDir: outDir,
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/report/index.html")
	})
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.Static("/report", s.outDir)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving the report on the given port.
func (s *Server) Run(port string) error {
	s.logger.Info("serving report from %s on :%s", s.outDir, port)
	return s.router.Run(":" + port)
}
