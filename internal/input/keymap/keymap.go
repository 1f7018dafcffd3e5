package keymap

import (
	"fmt"
	"maps"
)

// ActionScript runs a binding's Lua script.
const ActionScript = "script"

// Keymap is a named set of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string `yaml:"name"`

	// Source indicates where this keymap was defined, e.g. "default" or a
	// file path.
	Source string `yaml:"-"`

	// Bindings are the key-to-action mappings.
	Bindings []Binding `yaml:"bindings"`
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if b.Action == ActionScript && b.Script == "" {
			return fmt.Errorf("binding %d (%s): script action without script", i, b.Keys)
		}
		if _, err := b.Shortcut(); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// Merge returns a keymap with the bindings of k overridden by other.
// A binding in other replaces any binding in k with the same keys.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	merged := k.Clone()
	if other == nil {
		return merged
	}

	index := make(map[string]int, len(merged.Bindings))
	for i, b := range merged.Bindings {
		index[canonicalKeys(b)] = i
	}
	for _, b := range other.Bindings {
		if i, ok := index[canonicalKeys(b)]; ok {
			merged.Bindings[i] = cloneBinding(b)
			continue
		}
		index[canonicalKeys(b)] = len(merged.Bindings)
		merged.Bindings = append(merged.Bindings, cloneBinding(b))
	}
	return merged
}

func canonicalKeys(b Binding) string {
	sb, err := b.Shortcut()
	if err != nil {
		return b.Keys
	}
	return sb.String()
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = cloneBinding(b)
	}
	return clone
}

func cloneBinding(b Binding) Binding {
	if b.Args != nil {
		b.Args = maps.Clone(b.Args)
	}
	return b
}
