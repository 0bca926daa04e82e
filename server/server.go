// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/dijkstra"
	"github.com/katalvlaran/roadrl/engine"
	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/qlearn"
	"github.com/katalvlaran/roadrl/runstore"
	"github.com/katalvlaran/roadrl/scenario"
)

// Server serves one engine.
type Server struct {
	engine *engine.Engine
	store  *runstore.Store
	cache  *lru.Cache[string, searchResponse]
	log    *slog.Logger
	router *gin.Engine
}

// New builds the router.
func New(e *engine.Engine, opts ...Option) (*Server, error) {
	if e == nil {
		return nil, engine.ErrNilNetwork
	}
	cfg := Options{CacheSize: DefaultCacheSize, Logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cache, err := lru.New[string, searchResponse](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("server: cache: %w", err)
	}

	s := &Server{engine: e, store: cfg.Store, cache: cache, log: cfg.Logger}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.GET("/network", s.handleNetwork)
	v1.POST("/search", s.handleSearch)
	v1.POST("/train", s.handleTrain)
	if s.store != nil {
		v1.GET("/runs", s.handleRuns)
		v1.GET("/runs/:id", s.handleRun)
	}
	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method, "path", c.FullPath(),
			"status", c.Writer.Status(), "latency", time.Since(started))
	}
}

func (s *Server) handleNetwork(c *gin.Context) {
	st := s.engine.Network().Stats()
	m := s.engine.Model()
	c.JSON(http.StatusOK, networkResponse{
		Name:        s.engine.Name(),
		Junctions:   st.Junctions,
		Roads:       st.Roads,
		DeadEnds:    st.DeadEnds,
		MaxOut:      st.MaxOut,
		TotalLength: st.TotalLength,
		Metric:      m.Metric().String(),
		Speed:       m.Speed(),
		Width:       s.engine.Labeler().Width(),
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := req.Start + "\x00" + req.End
	if resp, ok := s.cache.Get(key); ok {
		resp.Cached = true
		c.JSON(http.StatusOK, resp)
		return
	}

	res, err := s.engine.Search(req.Start, req.End)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := searchResponse{
		Route:     res.Route,
		Metric:    s.engine.Model().Metric().String(),
		Cost:      res.Cost,
		Settled:   res.Settled,
		ElapsedMS: ms(res.Elapsed),
	}
	resp.Distance, _ = s.engine.RouteDistance(res.Route.Roads...)
	resp.Time, _ = s.engine.RouteTime(res.Route.Roads...)
	s.cache.Add(key, resp)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTrain(c *gin.Context) {
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = string(qlearn.QLearning)
	}
	if req.Episodes == 0 {
		req.Episodes = scenario.DefaultEpisodes
	}
	if req.Threshold == 0 {
		req.Threshold = scenario.DefaultThreshold
	}
	if req.Episodes > MaxEpisodes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("episodes %d above %d", req.Episodes, MaxEpisodes)})
		return
	}
	algo, err := qlearn.ParseAlgorithm(req.Algorithm)
	if err != nil {
		s.fail(c, err)
		return
	}

	var opts []engine.TrainOption
	if req.Exploration != nil {
		opts = append(opts, engine.WithExploration(*req.Exploration))
	}
	if req.Seed != nil {
		opts = append(opts, engine.WithTrainer(qlearn.WithSeed(*req.Seed)))
	}
	res, err := s.engine.Train(algo, req.Start, req.End, req.Episodes, req.Threshold, opts...)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := trainResponse{
		Algorithm: string(algo),
		Route:     res.Route,
		Metric:    s.engine.Model().Metric().String(),
		Episode:   res.Episode,
		Cost:      res.Cost,
		ElapsedMS: ms(res.Elapsed),
	}
	resp.Distance, _ = s.engine.RouteDistance(res.Route.Roads...)
	resp.Time, _ = s.engine.RouteTime(res.Route.Roads...)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	recs, err := s.store.List(limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if recs == nil {
		recs = []runstore.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleRun(c *gin.Context) {
	rec, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// fail maps domain errors onto status codes.
func (s *Server) fail(c *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, network.ErrInvalidIdentifier),
		errors.Is(err, qlearn.ErrBadParameter):
		return http.StatusBadRequest
	case errors.Is(err, dijkstra.ErrNoRoute),
		errors.Is(err, qlearn.ErrUnreachable),
		errors.Is(err, runstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, qlearn.ErrNotConverged):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
