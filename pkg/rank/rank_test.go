package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEmpty(t *testing.T) {
	res := Rank(nil, 5, DefaultMaxFeatures)
	assert.NotNil(t, res.Keywords)
	assert.NotNil(t, res.WordScores)
	assert.Empty(t, res.Keywords)
	assert.Empty(t, res.WordScores)
}

func TestRankTermFrequency(t *testing.T) {
	doc := []string{"測試", "分詞", "測試", "功能", "測試", "分詞"}
	res := Rank(doc, 5, DefaultMaxFeatures)

	assert.Equal(t, []string{"測試", "分詞", "功能"}, res.Keywords)
	// tf = 3, 2, 1 and ||tf|| = sqrt(14)
	norm := math.Sqrt(14)
	require.Len(t, res.WordScores, 3)
	assert.InDelta(t, 3/norm, res.WordScores[0].Score, 1e-12)
	assert.InDelta(t, 2/norm, res.WordScores[1].Score, 1e-12)
	assert.InDelta(t, 1/norm, res.WordScores[2].Score, 1e-12)

	var sum float64
	for i, ws := range res.WordScores {
		assert.Equal(t, res.Keywords[i], ws.Word)
		assert.GreaterOrEqual(t, ws.Score, 0.0)
		sum += ws.Score * ws.Score
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestRankTiesKeepFirstEncounter(t *testing.T) {
	doc := []string{"香蕉", "蘋果", "橘子", "蘋果", "香蕉", "橘子"}
	res := Rank(doc, 10, DefaultMaxFeatures)
	assert.Equal(t, []string{"香蕉", "蘋果", "橘子"}, res.Keywords)
}

func TestRankMonotonic(t *testing.T) {
	doc := []string{"甲乙", "丙丁", "甲乙", "戊己", "甲乙", "丙丁", "庚辛"}
	res := Rank(doc, 10, DefaultMaxFeatures)
	score := make(map[string]float64)
	for _, ws := range res.WordScores {
		score[ws.Word] = ws.Score
	}
	assert.Greater(t, score["甲乙"], score["丙丁"])
	assert.Greater(t, score["丙丁"], score["戊己"])
	assert.Equal(t, score["戊己"], score["庚辛"])
}

func TestRankTopN(t *testing.T) {
	doc := []string{"一一", "二二", "三三", "二二"}
	assert.Empty(t, Rank(doc, 0, 0).Keywords)
	assert.Empty(t, Rank(doc, -3, 0).WordScores)

	res := Rank(doc, 1, 0)
	assert.Equal(t, []string{"二二"}, res.Keywords)
	assert.Len(t, res.WordScores, 1)

	assert.Len(t, Rank(doc, 100, 0).Keywords, 3)
}

func TestRankMaxFeatures(t *testing.T) {
	doc := []string{"一一", "二二", "三三", "二二", "三三", "四四"}
	res := Rank(doc, 10, 2)
	assert.Equal(t, []string{"二二", "三三"}, res.Keywords)
	// normalized over the kept terms only
	assert.InDelta(t, 1/math.Sqrt2, res.WordScores[0].Score, 1e-12)
}

func TestFitSingleDocumentIDF(t *testing.T) {
	v := Fit([][]string{{"北京", "上海", "北京"}}, 0)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1, v.Docs())
	for _, term := range []string{"北京", "上海"} {
		idf, ok := v.IDF(term)
		require.True(t, ok)
		assert.Equal(t, 1.0, idf)
	}
	_, ok := v.IDF("廣州")
	assert.False(t, ok)
}

func TestFitCorpus(t *testing.T) {
	docs := [][]string{
		{"北京", "天氣", "北京"},
		{"上海", "天氣"},
		{"廣州", "天氣", "美食"},
	}
	v := Fit(docs, 0)
	common, _ := v.IDF("天氣")
	rare, _ := v.IDF("北京")
	assert.InDelta(t, 1.0, common, 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, rare, 1e-12)

	res := v.Rank(docs[1], 5)
	assert.Equal(t, []string{"上海", "天氣"}, res.Keywords)
	assert.Greater(t, res.WordScores[0].Score, res.WordScores[1].Score)

	assert.Empty(t, v.Rank([]string{"深圳"}, 5).Keywords)
}

func TestResultClone(t *testing.T) {
	res := Rank([]string{"北京", "上海"}, 5, 0)
	c := res.Clone()
	c.Keywords[0] = "改了"
	c.WordScores[0].Word = "改了"
	assert.Equal(t, "北京", res.Keywords[0])
	assert.Equal(t, "北京", res.WordScores[0].Word)
}
