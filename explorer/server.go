package explorer

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harmonlab/harmony-rl/rewards"
)

// Server exposes a loaded explorer over HTTP for browsing checkpoints
// and traces from outside the terminal.
type Server struct {
	explorer *Explorer
	server   *http.Server
}

func NewServer(explorer *Explorer, addr string) *Server {
	s := &Server{explorer: explorer}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/status", s.handleStatus)
	r.GET("/styles", s.handleStyles)
	r.GET("/policy/keys", s.handleKeys)
	r.GET("/policy/row", s.handleRow)
	r.GET("/traces", s.handleTraces)
	r.GET("/traces/:id", s.handleTrace)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) {
	go func() {
		s.server.ListenAndServe()
	}()
	go func() {
		<-ctx.Done()
		s.server.Shutdown(context.Background())
	}()
}

func (s *Server) handleStatus(c *gin.Context) {
	stats := s.explorer.Stats()
	c.JSON(http.StatusOK, gin.H{
		"kind":     s.explorer.Kind(),
		"episodes": stats.Episodes,
		"average":  stats.Average(),
		"best":     stats.Best,
		"states":   len(s.explorer.Keys()),
		"traces":   len(s.explorer.Traces),
	})
}

func (s *Server) handleStyles(c *gin.Context) {
	styles := make(gin.H)
	for _, name := range rewards.StyleNames() {
		w, err := rewards.PresetWeights(name)
		if err != nil {
			continue
		}
		styles[name] = w.Map()
	}
	c.JSON(http.StatusOK, styles)
}

func (s *Server) handleKeys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": s.explorer.Keys()})
}

func (s *Server) handleRow(c *gin.Context) {
	key := c.Query("key")
	row, ok := s.explorer.Row(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "values": row})
}

func (s *Server) handleTraces(c *gin.Context) {
	summaries := make([]gin.H, len(s.explorer.Traces))
	for i, t := range s.explorer.Traces {
		summaries[i] = gin.H{
			"id":     i,
			"steps":  t.Len(),
			"reward": t.TotalReward(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"traces": summaries})
}

func (s *Server) handleTrace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 || id >= len(s.explorer.Traces) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trace id"})
		return
	}
	c.JSON(http.StatusOK, s.explorer.Traces[id])
}
