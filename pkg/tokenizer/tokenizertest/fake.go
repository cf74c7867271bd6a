// Package tokenizertest provides a deterministic engine for tests that must
// not depend on a segmentation dictionary.
package tokenizertest

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/szuwgh/hanword/pkg/tokenizer"
)

// Fake cuts every space-separated run into chunks of Width runes (2 when
// unset); a shorter remainder becomes its own token. Spaces are emitted as
// tokens the way real engines do.
type Fake struct {
	Width int
	// Err is returned from every call when set.
	Err error
	// Panic makes Tokenize panic with this value when non-nil.
	Panic interface{}

	calls int64
}

// Calls reports how many times Tokenize ran.
func (f *Fake) Calls() int {
	return int(atomic.LoadInt64(&f.calls))
}

func (f *Fake) Tokenize(content []byte) (tokenizer.Tokens, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.Panic != nil {
		panic(f.Panic)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	width := f.Width
	if width <= 0 {
		width = 2
	}
	var (
		result tokenizer.Tokens
		start  = -1
		runes  int
	)
	emit := func(s, e int) {
		result = append(result, &tokenizer.Token{
			Term:     string(content[s:e]),
			Start:    s,
			End:      e,
			Position: len(result) + 1,
		})
	}
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == ' ' {
			if start >= 0 {
				emit(start, i)
				start, runes = -1, 0
			}
			emit(i, i+size)
			i += size
			continue
		}
		if start < 0 {
			start = i
		}
		i += size
		runes++
		if runes == width {
			emit(start, i)
			start, runes = -1, 0
		}
	}
	if start >= 0 {
		emit(start, len(content))
	}
	return result, nil
}
