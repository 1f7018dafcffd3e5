package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/dassana-io/web-utils/internal/event"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memStore) Set(key, value string) error {
	m[key] = value
	return nil
}

type failingStore struct{}

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestStored(t *testing.T) {
	tests := []struct {
		name  string
		store Reader
		want  Type
	}{
		{"nil store", nil, Default},
		{"absent", memStore{}, Default},
		{"dark", memStore{StorageKey: "dark"}, Dark},
		{"light", memStore{StorageKey: "light"}, Light},
		{"mixed case", memStore{StorageKey: " Light "}, Light},
		{"corrupt", memStore{StorageKey: "purple"}, Default},
		{"empty", memStore{StorageKey: ""}, Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stored(tt.store); got != tt.want {
				t.Errorf("Stored() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTracker_DefaultWithoutStoredTheme(t *testing.T) {
	tr, err := NewTracker(event.New(), memStore{})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	if tr.Current() != Dark {
		t.Errorf("Current() = %q, want %q", tr.Current(), Dark)
	}
}

func TestTracker_FollowsEmitter(t *testing.T) {
	e := event.New()
	ctx := context.Background()

	tr, err := NewTracker(e, memStore{StorageKey: "dark"})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	var seen []Type
	tr.OnChange(func(next Type) { seen = append(seen, next) })

	if err := e.Emit(ctx, event.TopicThemeUpdated, Light); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if tr.Current() != Light {
		t.Errorf("Current() = %q after emit, want light", tr.Current())
	}

	// Identical values are no-ops.
	for i := 0; i < 3; i++ {
		if err := e.Emit(ctx, event.TopicThemeUpdated, Light); err != nil {
			t.Fatal(err)
		}
	}
	if tr.Changes() != 1 || len(seen) != 1 {
		t.Errorf("changes = %d, callbacks = %d; want 1, 1", tr.Changes(), len(seen))
	}

	// Plain strings are accepted.
	if err := e.Emit(ctx, event.TopicThemeUpdated, "dark"); err != nil {
		t.Fatal(err)
	}
	if tr.Current() != Dark || len(seen) != 2 {
		t.Errorf("Current() = %q, callbacks = %d", tr.Current(), len(seen))
	}
}

func TestTracker_RejectsUnknownPayload(t *testing.T) {
	e := event.New()
	tr, err := NewTracker(e, memStore{})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	tests := []any{Type("purple"), 42, nil}
	for _, p := range tests {
		err := e.Emit(context.Background(), event.TopicThemeUpdated, p)
		if !errors.Is(err, ErrUnknownTheme) {
			t.Errorf("Emit(%v) = %v, want ErrUnknownTheme", p, err)
		}
	}
	if tr.Current() != Default {
		t.Errorf("Current() = %q, want unchanged default", tr.Current())
	}
}

func TestTracker_Close(t *testing.T) {
	e := event.New()
	tr, err := NewTracker(e, memStore{})
	if err != nil {
		t.Fatal(err)
	}
	if e.Count(event.TopicThemeUpdated) != 1 {
		t.Fatalf("Count() = %d, want 1", e.Count(event.TopicThemeUpdated))
	}

	tr.Close()
	tr.Close()

	if e.Count(event.TopicThemeUpdated) != 0 {
		t.Errorf("Count() = %d after Close, want 0", e.Count(event.TopicThemeUpdated))
	}
	if err := e.Emit(context.Background(), event.TopicThemeUpdated, Light); err != nil {
		t.Fatal(err)
	}
	if tr.Current() != Dark {
		t.Error("closed tracker should not follow updates")
	}
}

func TestTracker_OnChangeRelease(t *testing.T) {
	e := event.New()
	tr, err := NewTracker(e, memStore{})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	var order []string
	releaseA := tr.OnChange(func(Type) { order = append(order, "a") })
	tr.OnChange(func(Type) { order = append(order, "b") })

	_ = e.Emit(context.Background(), event.TopicThemeUpdated, Light)
	releaseA()
	releaseA()
	_ = e.Emit(context.Background(), event.TopicThemeUpdated, Dark)

	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "b" {
		t.Errorf("order = %v, want [a b b]", order)
	}
}

func TestSet(t *testing.T) {
	e := event.New()
	store := memStore{}
	ctx := context.Background()

	tr, err := NewTracker(e, store)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	if err := Set(ctx, e, store, Light); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if store[StorageKey] != "light" {
		t.Errorf("stored %q, want light", store[StorageKey])
	}
	if tr.Current() != Light {
		t.Errorf("tracker = %q, want light", tr.Current())
	}

	// A second tracker created later starts from storage.
	other, err := NewTracker(e, store)
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	if other.Current() != Light {
		t.Errorf("new tracker = %q, want light", other.Current())
	}

	if err := Set(ctx, e, store, "sepia"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("Set(sepia) = %v, want ErrUnknownTheme", err)
	}
	if err := Set(ctx, e, failingStore{}, Dark); err == nil {
		t.Error("Set() should report storage failure")
	}
	if tr.Current() != Light {
		t.Error("failed Set must not emit")
	}
}

func TestExternalChange(t *testing.T) {
	e := event.New()
	ctx := context.Background()
	tr, err := NewTracker(e, memStore{})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	fn := ExternalChange(ctx, e)

	fn("token", "x", true)
	if tr.Changes() != 0 {
		t.Error("unrelated key should be ignored")
	}

	fn(StorageKey, "light", true)
	if tr.Current() != Light {
		t.Errorf("Current() = %q, want light", tr.Current())
	}

	fn(StorageKey, "garbage", true)
	if tr.Current() != Light {
		t.Error("unknown stored value should be ignored")
	}

	fn(StorageKey, "", false)
	if tr.Current() != Default {
		t.Errorf("removed key should restore default, got %q", tr.Current())
	}
}

func TestParseAndToggle(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"dark", Dark, false},
		{"LIGHT", Light, false},
		{"", "", true},
		{"blue", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, err)
		}
	}

	if Dark.Toggle() != Light || Light.Toggle() != Dark {
		t.Error("Toggle() should swap themes")
	}
}

func TestPaletteFor(t *testing.T) {
	dark := PaletteFor(Dark)
	light := PaletteFor(Light)

	if dark.Background.Hex() == light.Background.Hex() {
		t.Error("dark and light backgrounds should differ")
	}
	if PaletteFor("unknown").Background.Hex() != dark.Background.Hex() {
		t.Error("unknown theme should fall back to the default palette")
	}

	for _, p := range []Palette{dark, light} {
		if !p.Muted.IsValid() {
			t.Error("muted color out of gamut")
		}
		if c := p.Contrast(); c < 50 || c > 150 {
			t.Errorf("contrast %.1f outside 50-150", p.Contrast())
		}
		if p.Severity("warning") != p.Warning || p.Severity("nope") != p.Foreground {
			t.Error("Severity() mapping wrong")
		}
	}
}
