// Package registry maps effect names to their modules.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/effect/ellipses"
	"github.com/san-kum/inkfield/internal/effect/halftone"
	"github.com/san-kum/inkfield/internal/effect/lines"
	"github.com/san-kum/inkfield/internal/effect/particles"
	"github.com/san-kum/inkfield/internal/effect/skeleton"
	"github.com/san-kum/inkfield/internal/effect/stars"
)

var ErrUnknown = errors.New("registry: unknown effect")

type Registry struct {
	effects map[string]func() effect.Module
}

func New() *Registry {
	r := &Registry{
		effects: make(map[string]func() effect.Module),
	}

	r.register(lines.Module)
	r.register(ellipses.Module)
	r.register(particles.Module)
	r.register(stars.Module)
	r.register(halftone.Module)
	r.register(skeleton.Module)

	return r
}

func (r *Registry) register(fn func() effect.Module) {
	r.effects[fn().Name()] = fn
}

func (r *Registry) Get(name string) (effect.Module, error) {
	fn, ok := r.effects[name]
	if !ok {
		return effect.Module{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return fn(), nil
}

// All returns every module, templates included, in ID order.
func (r *Registry) All() []effect.Module {
	mods := make([]effect.Module, 0, len(r.effects))
	for _, fn := range r.effects {
		mods = append(mods, fn())
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].ID < mods[j].ID })
	return mods
}

// List returns the names shown to users, in ID order.
func (r *Registry) List() []string {
	var names []string
	for _, m := range r.All() {
		if m.Template {
			continue
		}
		names = append(names, m.Name())
	}
	return names
}

// Next returns the listed effect after name, wrapping around. An unknown
// name yields the first effect.
func (r *Registry) Next(name string) string {
	names := r.List()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
