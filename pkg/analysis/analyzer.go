package analysis

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/szuwgh/hanword/pkg/tokenizer"
)

// Analyzer runs normalize, segment and filter over one text.
type Analyzer struct {
	t      tokenizer.Tokenizer
	engine string
	filter *StopwordFilter
}

// NewAnalyzer builds the named engine from the registry.
func NewAnalyzer(r *tokenizer.Registry, tokenizerType string, config map[string]interface{}, filter *StopwordFilter) (*Analyzer, error) {
	t, err := r.NewTokenizer(tokenizerType, config)
	if err != nil {
		return nil, err
	}
	return New(tokenizerType, t, filter), nil
}

// New wraps an already constructed engine. A nil filter means the default
// stopword set.
func New(engine string, t tokenizer.Tokenizer, filter *StopwordFilter) *Analyzer {
	if filter == nil {
		filter = NewStopwordFilter()
	}
	return &Analyzer{t: t, engine: engine, filter: filter}
}

func (a *Analyzer) Engine() string {
	return a.engine
}

func (a *Analyzer) Filter() *StopwordFilter {
	return a.filter
}

//分析
func (a *Analyzer) Analyze(raw string) (tokenizer.Tokens, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return nil, ErrEmptyInput
	}
	tokens, err := a.segment(normalized)
	if err != nil {
		return nil, err
	}
	return a.filter.Filter(tokens), nil
}

// AnalyzeTerms is Analyze returning token texts only.
func (a *Analyzer) AnalyzeTerms(raw string) ([]string, error) {
	tokens, err := a.Analyze(raw)
	if err != nil {
		return nil, err
	}
	return tokens.Terms(), nil
}

// segment drops the empty and whitespace-only tokens engines emit for
// separators.
func (a *Analyzer) segment(normalized string) (tokens tokenizer.Tokens, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = &SegmentError{Engine: a.engine, Err: errors.Errorf("panic: %v", r)}
		}
	}()
	raw, err := a.t.Tokenize([]byte(normalized))
	if err != nil {
		return nil, &SegmentError{Engine: a.engine, Err: err}
	}
	tokens = make(tokenizer.Tokens, 0, len(raw))
	for _, t := range raw {
		if strings.TrimSpace(t.Term) == "" {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Close releases the engine.
func (a *Analyzer) Close() error {
	return tokenizer.Close(a.t)
}
