// Package keyword composes normalization, segmentation, filtering and
// ranking into keyword extraction for one text or a batch.
package keyword

import (
	"context"
	"fmt"

	"github.com/szuwgh/hanword/pkg/analysis"
	"github.com/szuwgh/hanword/pkg/rank"
	"golang.org/x/sync/errgroup"
)

const DefaultTopN = 5

type Options struct {
	// MaxFeatures caps the per-document vocabulary; 0 means no cap.
	MaxFeatures int
	// Workers bounds batch concurrency; values below 1 mean 1.
	Workers int
}

func DefaultOptions() Options {
	return Options{MaxFeatures: rank.DefaultMaxFeatures, Workers: 4}
}

// BatchError is the failure of one batch entry. Index is zero-based.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("text %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Extractor is safe for concurrent use; it holds no per-call state.
type Extractor struct {
	analyzer *analysis.Analyzer
	opts     Options
}

func New(a *analysis.Analyzer, opts Options) *Extractor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Extractor{analyzer: a, opts: opts}
}

func (e *Extractor) Analyzer() *analysis.Analyzer {
	return e.analyzer
}

// Segment returns the filtered tokens of text.
func (e *Extractor) Segment(text string) ([]string, error) {
	return e.analyzer.AnalyzeTerms(text)
}

// Extract returns the topN keywords of text, weighted over text alone.
func (e *Extractor) Extract(text string, topN int) (*rank.Result, error) {
	terms, err := e.analyzer.AnalyzeTerms(text)
	if err != nil {
		return nil, err
	}
	return rank.Rank(terms, topN, e.opts.MaxFeatures), nil
}

// ExtractBatch runs Extract on every text, each with its own vocabulary.
// Results are in input order. If any text fails the batch fails with a
// *BatchError for the lowest failing index; all texts are attempted so
// that index does not depend on scheduling. Cancelling ctx abandons texts
// not yet started.
func (e *Extractor) ExtractBatch(ctx context.Context, texts []string, topN int) ([]*rank.Result, error) {
	results := make([]*rank.Result, len(texts))
	err := e.each(ctx, texts, func(i int, terms []string) {
		results[i] = rank.Rank(terms, topN, e.opts.MaxFeatures)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ExtractCorpus fits one vocabulary over all texts, so terms shared by
// many texts weigh less, and ranks each text against it. Errors follow
// ExtractBatch.
func (e *Extractor) ExtractCorpus(ctx context.Context, texts []string, topN int) ([]*rank.Result, error) {
	docs := make([][]string, len(texts))
	err := e.each(ctx, texts, func(i int, terms []string) {
		docs[i] = terms
	})
	if err != nil {
		return nil, err
	}
	vocab := rank.Fit(docs, e.opts.MaxFeatures)
	results := make([]*rank.Result, len(texts))
	for i, doc := range docs {
		results[i] = vocab.Rank(doc, topN)
	}
	return results, nil
}

// each analyzes texts on a bounded group and hands every success to fn.
func (e *Extractor) each(ctx context.Context, texts []string, fn func(i int, terms []string)) error {
	errs := make([]error, len(texts))
	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i := range texts {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			terms, err := e.analyzer.AnalyzeTerms(texts[i])
			if err != nil {
				errs[i] = err
				return nil
			}
			fn(i, terms)
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, err := range errs {
		if err != nil {
			return &BatchError{Index: i, Err: err}
		}
	}
	return nil
}
