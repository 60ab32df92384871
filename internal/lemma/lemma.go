// internal/lemma/lemma.go
//
// Base-form reduction for the morphological similarity check.
//
// Backends:
//   - "dictionary": golem English dictionary lemmas (plural/singular, tenses).
//   - "porter":     Porter stems; coarser, no lexical resource needed.
//
// Every backend is a pure function of its input word. Cached wraps any
// backend with a bounded LRU so repeated board words are looked up once.

package lemma

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	porterstemmer "github.com/blevesearch/go-porterstemmer"
	lru "github.com/hashicorp/golang-lru"
)

// Lemmatizer reduces a word to its base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Func adapts a plain function to Lemmatizer.
type Func func(string) string

func (f Func) Lemma(w string) string { return f(w) }

// Dictionary lemmatizes with the golem English pack.
type Dictionary struct {
	g *golem.Lemmatizer
}

// NewDictionary loads the English dictionary.
func NewDictionary() (*Dictionary, error) {
	g, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english dictionary: %w", err)
	}
	return &Dictionary{g: g}, nil
}

func (d *Dictionary) Lemma(word string) string {
	return d.g.Lemma(strings.ToLower(word))
}

// Porter stems with the Porter algorithm.
type Porter struct{}

func (Porter) Lemma(word string) string {
	return porterstemmer.StemString(strings.ToLower(word))
}

// Cached memoizes an underlying Lemmatizer.
type Cached struct {
	next  Lemmatizer
	cache *lru.Cache
}

// NewCached wraps next with an LRU of the given size.
func NewCached(next Lemmatizer, size int) (*Cached, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("lemma cache: %w", err)
	}
	return &Cached{next: next, cache: c}, nil
}

func (c *Cached) Lemma(word string) string {
	if v, ok := c.cache.Get(word); ok {
		return v.(string)
	}
	l := c.next.Lemma(word)
	c.cache.Add(word, l)
	return l
}

// Len reports how many words are cached.
func (c *Cached) Len() int { return c.cache.Len() }

// New builds the named backend, cached when cacheSize > 0.
func New(kind string, cacheSize int) (Lemmatizer, error) {
	var base Lemmatizer
	switch kind {
	case "", "dictionary":
		d, err := NewDictionary()
		if err != nil {
			return nil, err
		}
		base = d
	case "porter":
		base = Porter{}
	default:
		return nil, fmt.Errorf("unknown lemmatizer %q", kind)
	}
	if cacheSize <= 0 {
		return base, nil
	}
	return NewCached(base, cacheSize)
}
