package keyword

import (
	"context"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szuwgh/hanword/pkg/analysis"
	"github.com/szuwgh/hanword/pkg/rank"
	"github.com/szuwgh/hanword/pkg/tokenizer"
	"github.com/szuwgh/hanword/pkg/tokenizer/tokenizertest"
)

func newFakeExtractor(t *testing.T, workers int) *Extractor {
	t.Helper()
	opts := DefaultOptions()
	opts.Workers = workers
	return New(analysis.New("fake", &tokenizertest.Fake{}, nil), opts)
}

func TestSegment(t *testing.T) {
	e := newFakeExtractor(t, 1)
	terms, err := e.Segment("這是一個測試，測試分詞功能")
	require.NoError(t, err)
	assert.Equal(t, []string{"這是", "測試", "測試", "分詞", "功能"}, terms)

	_, err = e.Segment("hello 123 !!!")
	assert.True(t, errors.Is(err, analysis.ErrEmptyInput))
}

func TestExtract(t *testing.T) {
	e := newFakeExtractor(t, 1)
	res, err := e.Extract("這是一個測試，測試分詞功能", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"測試", "這是", "分詞"}, res.Keywords)
	require.Len(t, res.WordScores, 3)
	for i, ws := range res.WordScores {
		assert.Equal(t, res.Keywords[i], ws.Word)
		assert.GreaterOrEqual(t, ws.Score, 0.0)
	}
	assert.Greater(t, res.WordScores[0].Score, res.WordScores[1].Score)
}

func TestExtractTopNZero(t *testing.T) {
	e := newFakeExtractor(t, 1)
	res, err := e.Extract("這是一個測試，測試分詞功能", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Keywords)
	assert.Empty(t, res.WordScores)
}

func TestExtractOnlyNoise(t *testing.T) {
	e := newFakeExtractor(t, 1)
	// every token is a stopword or a single rune
	res, err := e.Extract("我們 的 一個, 是", 5)
	require.NoError(t, err)
	assert.Equal(t, rank.Empty(), res)

	_, err = e.Extract("https://example.com 42", 5)
	assert.True(t, errors.Is(err, analysis.ErrEmptyInput))
}

func TestExtractNeverReturnsFilteredTokens(t *testing.T) {
	e := newFakeExtractor(t, 1)
	inputs := []string{
		"我們你們他們她們那些這些",
		"的了和是就都而及與著或也",
		"中華民國 台灣 的 是 一個 測試",
	}
	stop := analysis.NewStopwordFilter()
	for _, in := range inputs {
		res, err := e.Extract(in, 100)
		require.NoError(t, err)
		for _, kw := range res.Keywords {
			assert.GreaterOrEqual(t, utf8.RuneCountInString(kw), 2)
			assert.False(t, stop.IsStopword(kw), kw)
		}
	}
}

func TestExtractBatch(t *testing.T) {
	texts := []string{
		"這是一個測試，測試分詞功能",
		"北京天氣 北京美食",
		"我們的",
		"上海 上海 廣州",
	}
	for _, workers := range []int{1, 3, 8} {
		e := newFakeExtractor(t, workers)
		results, err := e.ExtractBatch(context.Background(), texts, 2)
		require.NoError(t, err)
		require.Len(t, results, len(texts))
		for i, text := range texts {
			want, err := e.Extract(text, 2)
			require.NoError(t, err)
			assert.Equal(t, want, results[i], "text %d", i)
		}
	}
}

func TestExtractBatchEmpty(t *testing.T) {
	e := newFakeExtractor(t, 2)
	results, err := e.ExtractBatch(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExtractBatchFailsWhole(t *testing.T) {
	texts := []string{"北京天氣", "123", "上海天氣", "!!!"}
	for _, workers := range []int{1, 4} {
		e := newFakeExtractor(t, workers)
		results, err := e.ExtractBatch(context.Background(), texts, 5)
		assert.Nil(t, results)
		var be *BatchError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, 1, be.Index)
		assert.True(t, errors.Is(err, analysis.ErrEmptyInput))
		assert.Equal(t, "text 1: text is empty after cleaning", err.Error())
	}
}

func TestExtractBatchSegmentError(t *testing.T) {
	e := New(analysis.New("fake", &tokenizertest.Fake{Err: errors.New("broken")}, nil), DefaultOptions())
	_, err := e.ExtractBatch(context.Background(), []string{"北京", "上海"}, 5)
	var be *BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 0, be.Index)
	assert.True(t, analysis.IsSegmentError(err))
}

func TestExtractBatchCancelled(t *testing.T) {
	f := &tokenizertest.Fake{}
	e := New(analysis.New("fake", f, nil), DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := e.ExtractBatch(ctx, []string{"北京", "上海"}, 5)
	assert.Nil(t, results)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, f.Calls())
}

// cancelOnFirst cancels the batch context while the first text is being
// segmented.
type cancelOnFirst struct {
	tokenizer.Tokenizer
	cancel context.CancelFunc
	calls  int64
}

func (c *cancelOnFirst) Tokenize(content []byte) (tokenizer.Tokens, error) {
	if atomic.AddInt64(&c.calls, 1) == 1 {
		c.cancel()
	}
	return c.Tokenizer.Tokenize(content)
}

func TestExtractBatchCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ct := &cancelOnFirst{Tokenizer: &tokenizertest.Fake{}, cancel: cancel}
	e := New(analysis.New("fake", ct, nil), Options{Workers: 1})

	results, err := e.ExtractBatch(ctx, []string{"北京", "上海", "廣州", "深圳"}, 5)
	assert.Nil(t, results)
	assert.Equal(t, context.Canceled, err)
	// the texts after the first are never segmented
	assert.Equal(t, int64(1), atomic.LoadInt64(&ct.calls))
}

func TestExtractCorpus(t *testing.T) {
	e := newFakeExtractor(t, 2)
	texts := []string{
		"北京天氣 北京",
		"上海天氣",
		"廣州天氣美食",
	}
	results, err := e.ExtractCorpus(context.Background(), texts, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)
	// 天氣 appears in every text, so it ranks below the local terms
	assert.Equal(t, []string{"北京", "天氣"}, results[0].Keywords)
	assert.Equal(t, []string{"上海", "天氣"}, results[1].Keywords)
	assert.Equal(t, "天氣", results[2].Keywords[len(results[2].Keywords)-1])

	_, err = e.ExtractCorpus(context.Background(), []string{"北京", ""}, 5)
	var be *BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Index)
}

type wrappedTokenizer struct {
	tokenizer.Tokenizer
}

func TestExtractorUsesInjectedEngine(t *testing.T) {
	ct := &wrappedTokenizer{Tokenizer: &tokenizertest.Fake{Width: 3}}
	e := New(analysis.New("wrapped", ct, nil), Options{})
	res, err := e.Extract("中華民國中華民國", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"中華民", "國中華", "民國"}, res.Keywords)
	assert.Equal(t, "wrapped", e.Analyzer().Engine())
}
