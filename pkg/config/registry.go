package config

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownVar is returned when setting a variable nobody declared
var ErrUnknownVar = errors.New("unknown variable")

// Registry is a concurrent store of typed variables. Values persisted in the
// config file take precedence over declared defaults.
type Registry struct {
	mu     sync.RWMutex
	vars   map[string]*Var
	stored map[string]string
}

// NewRegistry creates a registry seeded with previously persisted values
func NewRegistry(stored map[string]string) *Registry {
	r := &Registry{
		vars:   make(map[string]*Var),
		stored: make(map[string]string, len(stored)),
	}
	for k, v := range stored {
		r.stored[k] = v
	}
	return r
}

// Declare registers a variable. Declaring an existing variable keeps its
// current value and only widens the archive flag.
func (r *Registry) Declare(name, value string, archive bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.vars[name]; ok {
		v.Archive = v.Archive || archive
		return
	}

	current := value
	if s, ok := r.stored[name]; ok {
		current = s
	}
	r.vars[name] = &Var{Name: name, Value: current, Default: value, Archive: archive}
}

// Get returns a copy of a variable
func (r *Registry) Get(name string) (Var, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vars[name]
	if !ok {
		return Var{}, false
	}
	return *v, true
}

// Set assigns a raw value to a declared variable
func (r *Registry) Set(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVar, name)
	}
	v.Value = value
	return nil
}

// set assigns a value, declaring a non-archived variable when missing
func (r *Registry) set(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.vars[name]; ok {
		v.Value = value
		return
	}
	r.vars[name] = &Var{Name: name, Value: value, Default: value}
}

// Bool reads a variable as a boolean; unknown variables read false
func (r *Registry) Bool(name string) bool {
	v, _ := r.Get(name)
	return v.Bool()
}

// Int reads a variable as an integer; unknown variables read 0
func (r *Registry) Int(name string) int {
	v, _ := r.Get(name)
	return v.Int()
}

// Float reads a variable as a float; unknown variables read 0
func (r *Registry) Float(name string) float64 {
	v, _ := r.Get(name)
	return v.Float()
}

// SetInt stores an integer value
func (r *Registry) SetInt(name string, value int) {
	r.set(name, FormatInt(value))
}

// SetFloat stores a float value
func (r *Registry) SetFloat(name string, value float64) {
	r.set(name, FormatFloat(value))
}

// All returns every variable sorted by name
func (r *Registry) All() []Var {
	r.mu.RLock()
	vars := make([]Var, 0, len(r.vars))
	for _, v := range r.vars {
		vars = append(vars, *v)
	}
	r.mu.RUnlock()

	SortVars(vars)
	return vars
}

// Archived returns the values that belong in the config file. Stored
// values for variables nobody declared this run are carried over.
func (r *Registry) Archived() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string)
	for k, v := range r.stored {
		if _, declared := r.vars[k]; !declared {
			result[k] = v
		}
	}
	for _, v := range r.vars {
		if v.Archive {
			result[v.Name] = v.Value
		}
	}
	return result
}
