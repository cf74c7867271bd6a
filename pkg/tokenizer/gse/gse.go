// Package gse registers a pure-Go segmentation engine backed by
// github.com/go-ego/gse and its embedded dictionaries.
package gse

import (
	"strings"

	"github.com/go-ego/gse"
	"github.com/pkg/errors"
	"github.com/szuwgh/hanword/pkg/tokenizer"
)

const Name = "gse"

func init() {
	tokenizer.RegisterConstructor(Name, NewTokenizer)
}

// GseTokenizer is read-only once the dictionary is loaded.
type GseTokenizer struct {
	seg gse.Segmenter
	hmm bool
}

// NewTokenizer loads the embedded "zh" dictionary, or the file named by
// dict_path when set.
func NewTokenizer(config map[string]interface{}) (tokenizer.Tokenizer, error) {
	t := &GseTokenizer{hmm: true}
	if v, ok := config["hmm"].(bool); ok {
		t.hmm = v
	}
	if path, ok := config["dict_path"].(string); ok && path != "" && path != "embed" {
		if err := t.seg.LoadDict(path); err != nil {
			return nil, errors.Wrapf(err, "load gse dictionary %s", path)
		}
		return t, nil
	}
	if err := t.seg.LoadDictEmbed("zh"); err != nil {
		return nil, errors.Wrap(err, "load embedded gse dictionary")
	}
	return t, nil
}

func (t *GseTokenizer) Tokenize(content []byte) (tokenizer.Tokens, error) {
	text := string(content)
	words := t.seg.Cut(text, t.hmm)
	result := make(tokenizer.Tokens, 0, len(words))
	cursor := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		start := cursor
		if i := strings.Index(text[cursor:], w); i >= 0 {
			start = cursor + i
		}
		cursor = start + len(w)
		if cursor > len(text) {
			cursor = len(text)
		}
		result = append(result, &tokenizer.Token{
			Term:     w,
			Start:    start,
			End:      start + len(w),
			Position: len(result) + 1,
		})
	}
	return result, nil
}
