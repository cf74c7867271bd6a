package gojieba

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/szuwgh/hanword/pkg/tokenizer"

	"github.com/yanyiwu/gojieba"
)

const Name = "gojieba"

func init() {
	tokenizer.RegisterConstructor(Name, NewTokenizer)
}

// JiebaTokenizer segments with jieba's precise mode. The C++ handle is
// read-only during Cut; AddWord mutates it, hence the RWMutex.
type JiebaTokenizer struct {
	mu     sync.RWMutex
	handle *gojieba.Jieba
	hmm    bool
}

// NewTokenizer builds a jieba engine. Missing dictionary paths fall back to
// the dictionaries bundled with gojieba.
func NewTokenizer(config map[string]interface{}) (tokenizer.Tokenizer, error) {
	paths := []struct {
		key string
		def string
	}{
		{"dict_path", gojieba.DICT_PATH},
		{"hmm_path", gojieba.HMM_PATH},
		{"user_dict_path", gojieba.USER_DICT_PATH},
		{"idf_path", gojieba.IDF_PATH},
		{"stop_words_path", gojieba.STOP_WORDS_PATH},
	}
	resolved := make([]string, len(paths))
	for i, p := range paths {
		v, err := stringOption(config, p.key, p.def)
		if err != nil {
			return nil, err
		}
		resolved[i] = v
	}
	hmm := true
	if v, ok := config["hmm"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Errorf("config hmm must be a bool, got %T", v)
		}
		hmm = b
	}
	t := newTokenizer(resolved[0], resolved[1], resolved[2], resolved[3], resolved[4])
	t.hmm = hmm
	if words, ok := config["user_words"]; ok {
		list, err := stringList(words)
		if err != nil {
			return nil, errors.Wrap(err, "config user_words")
		}
		for _, w := range list {
			t.AddWord(w)
		}
	}
	return t, nil
}

func newTokenizer(dictPath, hmmPath, userDictPath, idf, stopWords string) *JiebaTokenizer {
	return &JiebaTokenizer{
		handle: gojieba.NewJieba(dictPath, hmmPath, userDictPath, idf, stopWords),
		hmm:    true,
	}
}

//tokenize
func (t *JiebaTokenizer) Tokenize(content []byte) (tokenizer.Tokens, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.handle == nil {
		return nil, errors.New("jieba tokenizer is closed")
	}
	words := t.handle.Tokenize(string(content), gojieba.DefaultMode, t.hmm)
	result := make(tokenizer.Tokens, 0, len(words))
	pos := 1
	for _, word := range words {
		token := tokenizer.Token{
			Term:     word.Str,
			Start:    word.Start,
			End:      word.End,
			Position: pos,
		}
		result = append(result, &token)
		pos++
	}
	return result, nil
}

func (t *JiebaTokenizer) AddWord(word string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handle != nil {
		t.handle.AddWord(word)
	}
}

func (t *JiebaTokenizer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handle != nil {
		t.handle.Free()
		t.handle = nil
	}
	return nil
}

func stringOption(config map[string]interface{}, key, def string) (string, error) {
	v, ok := config[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("config %s must be a string, got %T", key, v)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// viper hands lists over as []interface{}
func stringList(v interface{}) ([]string, error) {
	switch l := v.(type) {
	case []string:
		return l, nil
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, errors.Errorf("want string, got %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Errorf("want list, got %T", v)
	}
}
