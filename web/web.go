package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/szuwgh/hanword/pkg/config"
	"github.com/szuwgh/hanword/pkg/server"
	"github.com/szuwgh/hanword/util"
	"golang.org/x/net/netutil"
)

const Version = "1.0.0"

type TextRequest struct {
	Text string `json:"text"`
	TopN *int   `json:"top_n"`
}

type TextListRequest struct {
	Texts []string `json:"texts"`
	TopN  *int     `json:"top_n"`
	// SharedVocabulary weights terms across the whole batch instead of
	// per text.
	SharedVocabulary bool `json:"shared_vocabulary"`
}

type Handler struct {
	s        *server.Server
	cfg      config.Server
	cors     config.CORS
	metrics  config.Metrics
	gatherer prometheus.Gatherer
	engine   *gin.Engine
}

// New wires the routes. gatherer backs the metrics endpoint and may be nil
// when metrics are disabled.
func New(s *server.Server, cfg *config.Config, gatherer prometheus.Gatherer) *Handler {
	h := &Handler{
		s:        s,
		cfg:      cfg.Server,
		cors:     cfg.CORS,
		metrics:  cfg.Metrics,
		gatherer: gatherer,
	}
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	h.engine = h.routes()
	return h
}

func (h *Handler) Router() http.Handler {
	return h.engine
}

func (h *Handler) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())
	if h.cors.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowCredentials = h.cors.AllowCredentials
		switch {
		case len(h.cors.AllowOrigins) > 0 && !contains(h.cors.AllowOrigins, "*"):
			corsConfig.AllowOrigins = h.cors.AllowOrigins
		case h.cors.AllowCredentials:
			// browsers refuse "*" with credentials, echo the origin instead
			corsConfig.AllowOriginFunc = func(string) bool { return true }
		default:
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Content-Encoding", "Authorization", requestIDHeader}
		corsConfig.ExposeHeaders = []string{requestIDHeader}
		corsConfig.AllowWebSockets = true
		r.Use(cors.New(corsConfig))
	}
	r.NoRoute(notFound)

	r.GET("/", h.root)
	r.GET("/healthz", h.health)
	if h.metrics.Enabled && h.gatherer != nil {
		r.GET(h.metrics.Path, gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	api.Use(limitBody(h.cfg.MaxBodyBytes), snappyBody(h.cfg.MaxBodyBytes))
	{
		api.POST("/segment", h.segment)
		api.GET("/segment", h.segment)
		api.POST("/keywords", h.keywords)
		api.GET("/keywords", h.keywords)
		api.POST("/batch-keywords", h.batchKeywords)
		api.GET("/ws", h.websocket)
	}
	return r
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to Chinese NLP API",
		"version": Version,
		"engine":  h.s.Engine(),
		"endpoints": []string{
			"POST /api/v1/segment",
			"POST /api/v1/keywords",
			"POST /api/v1/batch-keywords",
			"GET /api/v1/ws",
		},
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "engine": h.s.Engine()})
}

// bindText reads a JSON body, or the text and top_n query parameters on GET.
func (h *Handler) bindText(c *gin.Context) (*TextRequest, error) {
	req := &TextRequest{}
	if c.Request.Method == http.MethodGet {
		req.Text = c.Query("text")
		if v := c.Query("top_n"); v != "" {
			n, err := util.Str2Int(v)
			if err != nil {
				return nil, badRequest("invalid top_n: %v", err)
			}
			req.TopN = &n
		}
		return req, nil
	}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, bindError(err)
	}
	return req, nil
}

func (h *Handler) segment(c *gin.Context) {
	req, err := h.bindText(c)
	if err != nil {
		writeErr(c, err)
		return
	}
	words, err := h.s.Segment(req.Text)
	if err != nil {
		writeErr(c, err)
		return
	}
	if words == nil {
		words = []string{}
	}
	c.JSON(http.StatusOK, words)
}

func (h *Handler) keywords(c *gin.Context) {
	req, err := h.bindText(c)
	if err != nil {
		writeErr(c, err)
		return
	}
	res, err := h.s.Keywords(req.Text, h.s.TopN(req.TopN))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) batchKeywords(c *gin.Context) {
	req, err := h.bindTextList(c)
	if err != nil {
		writeErr(c, err)
		return
	}
	res, err := h.s.BatchKeywords(c.Request.Context(), req.Texts, h.s.TopN(req.TopN), req.SharedVocabulary)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bindTextList reads a JSON body, or a TextListMessage when the body is
// application/x-protobuf.
func (h *Handler) bindTextList(c *gin.Context) (*TextListRequest, error) {
	if c.ContentType() == protobufContentType {
		raw, err := c.GetRawData()
		if err != nil {
			return nil, bindError(err)
		}
		return decodeTextList(raw)
	}
	req := &TextListRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, bindError(err)
	}
	return req, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (h *Handler) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         h.cfg.Addr,
		Handler:      h.engine,
		ReadTimeout:  h.cfg.ReadTimeout,
		WriteTimeout: h.cfg.WriteTimeout,
	}
	l, err := net.Listen("tcp", h.cfg.Addr)
	if err != nil {
		return err
	}
	if h.cfg.MaxConns > 0 {
		l = netutil.LimitListener(l, h.cfg.MaxConns)
	}
	log.Println("server start:", l.Addr().String())

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(l)
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down server")
	timeout := h.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
