package server

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/cespare/xxhash"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/szuwgh/hanword/pkg/analysis"
	"github.com/szuwgh/hanword/pkg/config"
	"github.com/szuwgh/hanword/pkg/keyword"
	"github.com/szuwgh/hanword/pkg/rank"
	"github.com/szuwgh/hanword/pkg/tokenizer"
	"github.com/szuwgh/hanword/util"
)

var ErrBatchTooLarge = errors.New("too many texts in batch")

type Options struct {
	DefaultTopN int
	// MaxBatch limits texts per batch; 0 means unlimited.
	MaxBatch int
	// CacheSize is the number of single-text results kept; 0 disables.
	CacheSize int
}

//服务
type Server struct {
	ex      *keyword.Extractor
	opts    Options
	cache   *lru.Cache[uint64, *rank.Result]
	metrics *Metrics
}

// New builds the engine, stopword set and pipeline described by cfg.
// reg may be nil to skip metrics.
func New(cfg *config.Config, reg prometheus.Registerer) (*Server, error) {
	filter := analysis.NewStopwordFilter(cfg.Analysis.Stopwords...)
	if cfg.Analysis.StopwordsFile != "" {
		words, err := analysis.LoadStopwords(cfg.Analysis.StopwordsFile)
		if err != nil {
			return nil, err
		}
		filter = filter.With(words...)
	}
	a, err := analysis.NewAnalyzer(tokenizer.NewRegistry(), cfg.TokenizerType(), cfg.Tokenizer, filter)
	if err != nil {
		return nil, err
	}
	log.Printf("tokenizer %s ready, %d stopwords", cfg.TokenizerType(), filter.Len())
	ex := keyword.New(a, keyword.Options{
		MaxFeatures: cfg.Keyword.MaxFeatures,
		Workers:     cfg.Keyword.BatchWorkers,
	})
	var m *Metrics
	if reg != nil {
		m = MustNewMetrics(reg)
	}
	return NewWithExtractor(ex, Options{
		DefaultTopN: cfg.Keyword.DefaultTopN,
		MaxBatch:    cfg.Keyword.MaxBatch,
		CacheSize:   cfg.Cache.Size,
	}, m)
}

// NewWithExtractor wraps an existing pipeline. m may be nil.
func NewWithExtractor(ex *keyword.Extractor, opts Options, m *Metrics) (*Server, error) {
	s := &Server{ex: ex, opts: opts, metrics: m}
	if opts.CacheSize > 0 {
		c, err := lru.New[uint64, *rank.Result](opts.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "create result cache")
		}
		s.cache = c
	}
	return s, nil
}

func (s *Server) DefaultTopN() int {
	return s.opts.DefaultTopN
}

func (s *Server) Engine() string {
	return s.ex.Analyzer().Engine()
}

// TopN resolves an optional request value against the default.
func (s *Server) TopN(n *int) int {
	if n == nil {
		return s.opts.DefaultTopN
	}
	return *n
}

func (s *Server) Segment(text string) (words []string, err error) {
	defer func(start time.Time) { s.metrics.observe(OpSegment, start, 1, err) }(time.Now())
	return s.ex.Segment(text)
}

// Keywords extracts from one text. Results are cached by engine, topN and
// raw text; callers get their own copy.
func (s *Server) Keywords(text string, topN int) (res *rank.Result, err error) {
	defer func(start time.Time) { s.metrics.observe(OpKeywords, start, 1, err) }(time.Now())
	if s.cache == nil {
		return s.ex.Extract(text, topN)
	}
	key := s.cacheKey(text, topN)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.cacheLookup(true)
		return cached.Clone(), nil
	}
	s.metrics.cacheLookup(false)
	res, err = s.ex.Extract(text, topN)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, res.Clone())
	return res, nil
}

// BatchKeywords extracts from every text. shared switches from
// per-text weighting to one vocabulary fitted over the whole batch.
func (s *Server) BatchKeywords(ctx context.Context, texts []string, topN int, shared bool) (res []*rank.Result, err error) {
	defer func(start time.Time) { s.metrics.observe(OpBatch, start, len(texts), err) }(time.Now())
	if s.opts.MaxBatch > 0 && len(texts) > s.opts.MaxBatch {
		return nil, errors.Wrapf(ErrBatchTooLarge, "%d texts, limit %d", len(texts), s.opts.MaxBatch)
	}
	if shared {
		return s.ex.ExtractCorpus(ctx, texts, topN)
	}
	return s.ex.ExtractBatch(ctx, texts, topN)
}

func (s *Server) cacheKey(text string, topN int) uint64 {
	h := xxhash.New()
	h.Write(util.Str2bytes(s.Engine()))
	h.Write([]byte{0xff})
	h.Write(util.Str2bytes(strconv.Itoa(topN)))
	h.Write([]byte{0xff})
	h.Write(util.Str2bytes(text))
	return h.Sum64()
}

// CacheLen is the number of cached results.
func (s *Server) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

func (s *Server) Close() error {
	return s.ex.Analyzer().Close()
}
