// Package rank scores the tokens of a document with TF-IDF weighting and
// picks the top keywords.
//
// Rank fits the weighting on the document alone. With a single-document
// corpus every idf is 1, so scores are the document's term frequencies
// scaled to unit length. Callers wanting corpus-level weighting fit a
// Vocabulary over all documents and call Vocabulary.Rank instead.
package rank

import "sort"

type WordScore struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Result holds the top keywords of one document. Keywords[i] is always
// WordScores[i].Word.
type Result struct {
	Keywords   []string    `json:"keywords"`
	WordScores []WordScore `json:"word_scores"`
}

// Empty returns a result with non-nil, empty lists.
func Empty() *Result {
	return &Result{Keywords: []string{}, WordScores: []WordScore{}}
}

// Clone copies r so the copy can be handed out independently.
func (r *Result) Clone() *Result {
	c := &Result{
		Keywords:   make([]string, len(r.Keywords)),
		WordScores: make([]WordScore, len(r.WordScores)),
	}
	copy(c.Keywords, r.Keywords)
	copy(c.WordScores, r.WordScores)
	return c
}

// Rank scores tokens of one document and returns the topN keywords.
func Rank(tokens []string, topN, maxFeatures int) *Result {
	if len(tokens) == 0 {
		return Empty()
	}
	return Fit([][]string{tokens}, maxFeatures).Rank(tokens, topN)
}

// top sorts by descending score; equal scores keep their input order.
func top(scores []WordScore, topN int) *Result {
	if topN <= 0 || len(scores) == 0 {
		return Empty()
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if topN < len(scores) {
		scores = scores[:topN]
	}
	res := &Result{
		Keywords:   make([]string, len(scores)),
		WordScores: make([]WordScore, len(scores)),
	}
	for i, s := range scores {
		res.Keywords[i] = s.Word
		res.WordScores[i] = s
	}
	return res
}
