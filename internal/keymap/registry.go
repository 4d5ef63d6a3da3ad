// Package keymap maps key presses to command ids per focus context.
package keymap

import (
	"sort"
	"sync"
)

// Global is the fallback context consulted after the active one.
const Global = "global"

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Command is a named action listed in the palette. The caller dispatches
// it by id after Lookup.
type Command struct {
	ID          string
	Name        string
	Description string
}

// Registry holds bindings, commands and user overrides.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[string]map[string]string // context -> key -> command
	commands  map[string]Command
	overrides map[string]string // key -> command, all contexts
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string]map[string]string),
		commands:  make(map[string]Command),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds or replaces a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := b.Context
	if ctx == "" {
		ctx = Global
	}
	if r.bindings[ctx] == nil {
		r.bindings[ctx] = make(map[string]string)
	}
	r.bindings[ctx][b.Key] = b.Command
}

// RegisterCommand adds or replaces a command.
func (r *Registry) RegisterCommand(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[c.ID] = c
}

// GetCommand returns the command with id.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[id]
	return c, ok
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetUserOverride binds key to cmdID in every context, taking precedence
// over default bindings. An empty cmdID unbinds the key.
func (r *Registry) SetUserOverride(key, cmdID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = cmdID
}

// Lookup resolves key in context, falling back to the global context.
func (r *Registry) Lookup(key, context string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.overrides[key]; ok {
		return cmd, cmd != ""
	}
	if cmd, ok := r.bindings[context][key]; ok {
		return cmd, true
	}
	if context != Global {
		if cmd, ok := r.bindings[Global][key]; ok {
			return cmd, true
		}
	}
	return "", false
}

// BindingsForContext returns the bindings active in context, including
// global ones it does not shadow, sorted by key. Overrides are applied.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	merged := make(map[string]Binding)
	if context != Global {
		for k, c := range r.bindings[Global] {
			merged[k] = Binding{Key: k, Command: c, Context: Global}
		}
	}
	for k, c := range r.bindings[context] {
		merged[k] = Binding{Key: k, Command: c, Context: context}
	}
	for k, c := range r.overrides {
		if c == "" {
			delete(merged, k)
			continue
		}
		merged[k] = Binding{Key: k, Command: c, Context: context}
	}

	out := make([]Binding, 0, len(merged))
	for _, b := range merged {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// KeysForCommand returns the keys bound to cmdID in context (with global
// fallback), sorted.
func (r *Registry) KeysForCommand(cmdID, context string) []string {
	var keys []string
	for _, b := range r.BindingsForContext(context) {
		if b.Command == cmdID {
			keys = append(keys, b.Key)
		}
	}
	return keys
}
