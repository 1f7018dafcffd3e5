package key

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"esc", Escape},
		{"Escape", Escape},
		{"ESCAPE", Escape},
		{"ctrl", Control},
		{"cmd", Meta},
		{"Command", Meta},
		{"option", Alt},
		{"up", ArrowUp},
		{"arrowdown", ArrowDown},
		{"space", Space},
		{" ", Space},
		{"return", Enter},
		{"a", "a"},
		{"A", "A"},
		{" x ", "x"},
		{"f12", F12},
		{"Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsKnown(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a", true},
		{Escape, true},
		{Meta, true},
		{Space, true},
		{"", false},
		{"esc", false},
		{"Hyper", false},
	}

	for _, tt := range tests {
		if got := IsKnown(tt.in); got != tt.want {
			t.Errorf("IsKnown(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	if !IsModifier(Meta) || !IsModifier(Shift) || IsModifier("a") {
		t.Error("IsModifier misclassified")
	}
	if !IsFunctionKey(F1) || IsFunctionKey("F13") {
		t.Error("IsFunctionKey misclassified")
	}
	if !IsArrowKey(ArrowLeft) || IsArrowKey(Home) {
		t.Error("IsArrowKey misclassified")
	}
	if !IsNavigationKey(Home) || !IsNavigationKey(ArrowUp) || IsNavigationKey(Enter) {
		t.Error("IsNavigationKey misclassified")
	}
}

func TestModifier(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)

	if !m.Has(ModCtrl) || !m.Has(ModShift) || m.Has(ModAlt) {
		t.Errorf("unexpected modifier set %v", m)
	}
	if got := m.String(); got != "Control+Shift" {
		t.Errorf("String() = %q, want %q", got, "Control+Shift")
	}
	if got := m.Without(ModCtrl); got != ModShift {
		t.Errorf("Without(ModCtrl) = %v, want Shift", got)
	}
	if !ModNone.IsEmpty() {
		t.Error("expected ModNone to be empty")
	}
	if ModifierOf(Alt) != ModAlt || ModifierOf("x") != ModNone {
		t.Error("ModifierOf misclassified")
	}
}

func TestEventPreventDefault(t *testing.T) {
	e := Down(Escape)
	if e.DefaultPrevented() {
		t.Fatal("new event should not be prevented")
	}
	e.PreventDefault()
	if !e.DefaultPrevented() {
		t.Error("expected DefaultPrevented after PreventDefault")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event *Event
		want  string
	}{
		{Down("a"), "keydown a"},
		{Up(Meta), "keyup Meta"},
		{Down(Space), "keydown Space"},
		{NewEvent(KeyDown, "x", ModCtrl), "keydown Control+x"},
		{NewEvent(KeyDown, Control, ModCtrl), "keydown Control"},
		{Down("a").AsRepeat(), "keydown a (repeat)"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	if ty, err := ParseType("keydown"); err != nil || ty != KeyDown {
		t.Errorf("ParseType(keydown) = %v, %v", ty, err)
	}
	if ty, err := ParseType("keyup"); err != nil || ty != KeyUp {
		t.Errorf("ParseType(keyup) = %v, %v", ty, err)
	}
	if _, err := ParseType("keypress"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want []string
	}{
		{"a", []string{"a"}},
		{"esc", []string{Escape}},
		{"Space", []string{Space}},
		{" ", []string{Space}},
		{"+", []string{"+"}},
		{"Meta+a", []string{Meta, "a"}},
		{"cmd+A", []string{Meta, "A"}},
		{"ctrl+shift+p", []string{Control, Shift, "p"}},
		{"Control++", []string{Control, "+"}},
		{"<C-x>", []string{Control, "x"}},
		{"<D-a>", []string{Meta, "a"}},
		{"<Esc>", []string{Escape}},
		{"<CR>", []string{Enter}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"Meta+", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("")
}

func TestFormat(t *testing.T) {
	if got := Format([]string{Control, Space}); got != "Control+Space" {
		t.Errorf("Format() = %q", got)
	}
	keys := MustParse(Format([]string{Meta, "a"}))
	if !reflect.DeepEqual(keys, []string{Meta, "a"}) {
		t.Errorf("Format round trip = %q", keys)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name      string
		os        OS
		wantKey   string
		wantLabel string
	}{
		{"mod", OSMac, Meta, "⌘"},
		{"mod", OSWindows, Control, "Ctrl"},
		{"ctrl", OSWindows, Control, "Ctrl"},
		{"alt", OSMac, Alt, "⌥"},
		{"shift", OSMac, Shift, "⇧"},
		{"escape", OSWindows, Escape, "Escape"},
		{"k", OSMac, "k", "K"},
		{"space", OSWindows, Space, "Space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, label := Label(tt.name, tt.os)
			if k != tt.wantKey || label != tt.wantLabel {
				t.Errorf("Label(%q) = (%q, %q), want (%q, %q)", tt.name, k, label, tt.wantKey, tt.wantLabel)
			}
		})
	}
}

func TestModifierKeys(t *testing.T) {
	keys, label := ModifierKeys([]string{"mod", "k"}, OSMac)
	if !reflect.DeepEqual(keys, []string{Meta, "k"}) {
		t.Errorf("keys = %q", keys)
	}
	if label != "⌘ + K" {
		t.Errorf("label = %q, want %q", label, "⌘ + K")
	}

	keys, label = ModifierKeys([]string{"mod", "k"}, OSWindows)
	if !reflect.DeepEqual(keys, []string{Control, "k"}) || label != "Ctrl + K" {
		t.Errorf("windows = %q %q", keys, label)
	}
}

func TestParseOS(t *testing.T) {
	tests := []struct {
		in   string
		want OS
		ok   bool
	}{
		{"mac", OSMac, true},
		{" Darwin ", OSMac, true},
		{"windows", OSWindows, true},
		{"linux", OSWindows, true},
		{"beos", OSWindows, false},
	}
	for _, tt := range tests {
		got, err := ParseOS(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseOS(%q) = %v, %v", tt.in, got, err)
		}
	}
	if OSMac.String() != "mac" || OSWindows.String() != "windows" {
		t.Error("OS.String mismatch")
	}
}
