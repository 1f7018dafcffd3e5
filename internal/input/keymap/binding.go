package keymap

import (
	"fmt"
	"strings"

	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/input/shortcut"
)

// Binding maps keys to an action.
type Binding struct {
	// Keys is the key or chord, e.g. "Escape", "Meta+k", "<C-x>".
	Keys string `yaml:"keys"`

	// On is keydown or keyup for single keys. Empty means keydown.
	On string `yaml:"on,omitempty"`

	// Action names what to run, e.g. "theme.toggle".
	Action string `yaml:"action"`

	// Args are fixed arguments for the action.
	Args map[string]any `yaml:"args,omitempty"`

	// Script is Lua source run when Action is "script".
	Script string `yaml:"script,omitempty"`

	// When is a condition expression that must hold for the binding to fire.
	When string `yaml:"when,omitempty"`

	// PreventDefault marks the triggering key event as handled.
	PreventDefault bool `yaml:"preventDefault,omitempty"`

	// Description provides documentation for the binding.
	Description string `yaml:"description,omitempty"`

	// Category groups bindings for display purposes.
	Category string `yaml:"category,omitempty"`
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithWhen sets the condition for this binding.
func (b Binding) WithWhen(when string) Binding {
	b.When = when
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Shortcut converts the binding keys into a shortcut binding.
func (b Binding) Shortcut() (shortcut.Binding, error) {
	keys, err := key.Parse(b.Keys)
	if err != nil {
		return nil, err
	}

	trigger := key.KeyDown
	if b.On != "" {
		if trigger, err = key.ParseType(b.On); err != nil {
			return nil, err
		}
		if len(keys) > 1 && trigger != key.KeyDown {
			return nil, fmt.Errorf("%w: chords fire on keydown only", shortcut.ErrInvalidTrigger)
		}
	}
	return shortcut.FromKeys(keys, trigger)
}

// Label returns the display label for the binding keys on os.
// The portable name "mod" is shown as the primary modifier of os.
func (b Binding) Label(os key.OS) string {
	if strings.HasPrefix(b.Keys, "<") {
		keys, err := key.Parse(b.Keys)
		if err != nil {
			return b.Keys
		}
		_, label := key.ModifierKeys(keys, os)
		return label
	}
	_, label := key.ModifierKeys(strings.Split(b.Keys, "+"), os)
	return label
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
