package experiment

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/san-kum/isingsim/internal/ising"
)

const DefaultSource = "pcg"

// Registry maps random source names to constructors.
type Registry struct {
	sources map[string]func(seed int64) ising.Source
}

func NewRegistry() *Registry {
	r := &Registry{
		sources: make(map[string]func(seed int64) ising.Source),
	}

	r.Register("pcg", func(seed int64) ising.Source {
		return rand.New(rand.NewPCG(uint64(seed), 0))
	})
	r.Register("chacha8", func(seed int64) ising.Source {
		var key [32]byte
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint64(key[i*8:], uint64(seed)+uint64(i))
		}
		return rand.New(rand.NewChaCha8(key))
	})

	return r
}

// Register adds or replaces a source constructor.
func (r *Registry) Register(name string, fn func(seed int64) ising.Source) {
	if name == "" || fn == nil {
		return
	}
	r.sources[name] = fn
}

func (r *Registry) GetSource(name string, seed int64) (ising.Source, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s (available: %v)", name, r.ListSources())
	}
	return fn(seed), nil
}

func (r *Registry) ListSources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder returns an ising.Builder that creates dim x dim ensembles fed by
// the named source.
func (r *Registry) Builder(name string, dim int, params ising.Params) (ising.Builder, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s (available: %v)", name, r.ListSources())
	}
	return func(seed int64) *ising.Ensemble {
		return ising.New(dim, params, fn(seed))
	}, nil
}
