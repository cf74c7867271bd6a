package rank

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// DefaultMaxFeatures caps vocabulary size; the most frequent terms are kept.
const DefaultMaxFeatures = 1000

// Vocabulary is a fitted term-weighting model: terms in first-encounter
// order and a smoothed idf per term. It is immutable after Fit.
type Vocabulary struct {
	terms []string
	index map[string]int
	idf   []float64
	docs  int
}

type termStat struct {
	term  string
	count int
	docs  *roaring.Bitmap
}

// Fit builds a vocabulary over docs. maxFeatures > 0 keeps only the terms
// with the highest corpus count, ties going to the earlier term.
//
// idf(t) = ln((1+n)/(1+df(t))) + 1, so a corpus of one document gives
// every term idf 1.
func Fit(docs [][]string, maxFeatures int) *Vocabulary {
	var (
		stats []*termStat
		seen  = make(map[string]int)
	)
	for d, doc := range docs {
		for _, term := range doc {
			i, ok := seen[term]
			if !ok {
				i = len(stats)
				seen[term] = i
				stats = append(stats, &termStat{term: term, docs: roaring.NewBitmap()})
			}
			stats[i].count++
			stats[i].docs.Add(uint32(d))
		}
	}

	if maxFeatures > 0 && len(stats) > maxFeatures {
		order := make([]int, len(stats))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return stats[order[a]].count > stats[order[b]].count
		})
		keep := order[:maxFeatures]
		sort.Ints(keep)
		kept := make([]*termStat, len(keep))
		for i, k := range keep {
			kept[i] = stats[k]
		}
		stats = kept
	}

	n := float64(len(docs))
	v := &Vocabulary{
		terms: make([]string, len(stats)),
		index: make(map[string]int, len(stats)),
		idf:   make([]float64, len(stats)),
		docs:  len(docs),
	}
	for i, s := range stats {
		df := float64(s.docs.GetCardinality())
		v.terms[i] = s.term
		v.index[s.term] = i
		v.idf[i] = math.Log((1+n)/(1+df)) + 1
	}
	return v
}

// Len is the number of terms kept.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Docs is the number of documents the vocabulary was fitted on.
func (v *Vocabulary) Docs() int {
	return v.docs
}

// IDF returns the weight factor of term and whether it is in the
// vocabulary.
func (v *Vocabulary) IDF(term string) (float64, bool) {
	i, ok := v.index[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// Transform weights doc against the vocabulary: tf*idf, l2-normalized.
// Terms outside the vocabulary are ignored. Scores come back in vocabulary
// order and only for terms with a positive weight.
func (v *Vocabulary) Transform(doc []string) []WordScore {
	tf := make([]float64, len(v.terms))
	for _, term := range doc {
		if i, ok := v.index[term]; ok {
			tf[i]++
		}
	}
	var norm float64
	for i := range tf {
		tf[i] *= v.idf[i]
		norm += tf[i] * tf[i]
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	scores := make([]WordScore, 0, len(tf))
	for i, w := range tf {
		if w > 0 {
			scores = append(scores, WordScore{Word: v.terms[i], Score: w / norm})
		}
	}
	return scores
}

// Rank scores doc against the vocabulary and keeps the topN best.
func (v *Vocabulary) Rank(doc []string, topN int) *Result {
	return top(v.Transform(doc), topN)
}
