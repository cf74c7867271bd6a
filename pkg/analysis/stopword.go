package analysis

import (
	"bufio"
	"os"
	"strings"
	"unicode/utf8"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/pkg/errors"
	"github.com/szuwgh/hanword/pkg/tokenizer"
)

// DefaultStopwords are the function words dropped by every pipeline.
var DefaultStopwords = []string{
	"的", "了", "和", "是", "就", "都", "而", "及", "與", "著",
	"或", "一個", "沒有", "我們", "你們", "他們", "她們", "有些",
	"也", "就是", "但是", "可以", "這個", "那個", "這些", "那些",
}

// StopwordFilter drops stopwords and single-rune tokens. The word set is an
// immutable radix tree, so a filter is safe to share between goroutines.
type StopwordFilter struct {
	tree *iradix.Tree
}

// NewStopwordFilter builds a filter over DefaultStopwords plus extra.
func NewStopwordFilter(extra ...string) *StopwordFilter {
	txn := iradix.New().Txn()
	for _, w := range DefaultStopwords {
		txn.Insert([]byte(w), struct{}{})
	}
	for _, w := range extra {
		if w = strings.TrimSpace(w); w != "" {
			txn.Insert([]byte(w), struct{}{})
		}
	}
	return &StopwordFilter{tree: txn.Commit()}
}

// With returns a new filter that also drops words. f is left unchanged.
func (f *StopwordFilter) With(words ...string) *StopwordFilter {
	txn := f.tree.Txn()
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			txn.Insert([]byte(w), struct{}{})
		}
	}
	return &StopwordFilter{tree: txn.Commit()}
}

// LoadStopwords reads one word per line. Blank lines and lines starting
// with # are skipped.
func LoadStopwords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open stopwords file")
	}
	defer f.Close()
	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read stopwords file %s", path)
	}
	return words, nil
}

func (f *StopwordFilter) IsStopword(word string) bool {
	_, ok := f.tree.Get([]byte(word))
	return ok
}

// Len is the number of words in the set.
func (f *StopwordFilter) Len() int {
	return f.tree.Len()
}

// Keep reports whether a token survives filtering.
func (f *StopwordFilter) Keep(word string) bool {
	return utf8.RuneCountInString(word) != 1 && !f.IsStopword(word)
}

// Filter keeps order and duplicates.
func (f *StopwordFilter) Filter(tokens tokenizer.Tokens) tokenizer.Tokens {
	out := make(tokenizer.Tokens, 0, len(tokens))
	for _, t := range tokens {
		if f.Keep(t.Term) {
			out = append(out, t)
		}
	}
	return out
}
