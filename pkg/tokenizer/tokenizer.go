package tokenizer

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Tokenizer splits normalized text into word-like tokens. Implementations
// must be deterministic for a fixed dictionary and safe for concurrent use.
type Tokenizer interface {
	Tokenize(content []byte) (Tokens, error)
}

// WordAdder is implemented by engines that accept user dictionary words
// after construction.
type WordAdder interface {
	AddWord(word string)
}

type Constructor func(config map[string]interface{}) (Tokenizer, error)

var (
	constructorsMu         sync.Mutex
	registeredConstructors = make(map[string]Constructor)
)

// RegisterConstructor makes an engine available by name. It is meant to be
// called from init functions.
func RegisterConstructor(_type string, c Constructor) {
	constructorsMu.Lock()
	defer constructorsMu.Unlock()
	registeredConstructors[_type] = c
}

//tokenizer Registry
type Registry struct {
	tokenizerMap map[string]Constructor
}

// NewRegistry snapshots the constructors registered so far.
func NewRegistry() *Registry {
	ret := &Registry{
		tokenizerMap: make(map[string]Constructor),
	}
	constructorsMu.Lock()
	defer constructorsMu.Unlock()
	for typ, c := range registeredConstructors {
		ret.RegisterTokenizer(typ, c)
	}
	return ret
}

func (r *Registry) RegisterTokenizer(_type string, constructor Constructor) error {
	_, exist := r.tokenizerMap[_type]
	if exist {
		return errors.New("tokenizer type " + _type + " has been existed")
	}
	r.tokenizerMap[_type] = constructor
	return nil
}

func (r *Registry) NewTokenizer(_type string, config map[string]interface{}) (Tokenizer, error) {
	constructor, exist := r.tokenizerMap[_type]
	if !exist {
		return nil, fmt.Errorf("tokenizer type unsupported : %v", _type)
	}
	tokenizer, err := constructor(config)
	if err != nil {
		return nil, errors.Wrapf(err, "create tokenizer %s", _type)
	}
	return tokenizer, nil
}

// Types lists the registered engine names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.tokenizerMap))
	for typ := range r.tokenizerMap {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Close releases engine resources when the engine holds any.
func Close(t Tokenizer) error {
	if c, ok := t.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
