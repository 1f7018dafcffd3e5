package evdev

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/input/shortcut"
)

const (
	codeEsc   = 1
	codeCtrl  = 29
	codeA     = 30
	codeShift = 42
	codeK     = 37
	codeMeta  = 125
)

func record(typ, code uint16, value int32) []byte {
	ts := time.Unix(1700000000, 250000*int64(time.Microsecond))
	rec := make([]byte, inputEventSize)
	binary.LittleEndian.PutUint64(rec[0:], uint64(ts.Unix()))
	binary.LittleEndian.PutUint64(rec[8:], uint64(ts.Nanosecond()/int(time.Microsecond)))
	binary.LittleEndian.PutUint16(rec[16:], typ)
	binary.LittleEndian.PutUint16(rec[18:], code)
	binary.LittleEndian.PutUint32(rec[20:], uint32(value))
	return rec
}

func keyRec(code uint16, value int32) []byte {
	return record(evKey, code, value)
}

func stream(recs ...[]byte) []byte {
	return bytes.Join(recs, nil)
}

func TestDecode(t *testing.T) {
	dec := NewDecoder()
	events := dec.Decode(stream(
		keyRec(codeEsc, valuePress),
		record(0, 0, 0), // EV_SYN
		keyRec(codeEsc, valueRepeat),
		keyRec(codeEsc, valueRelease),
		keyRec(999, valuePress),
	))

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	if events[0].Type != key.KeyDown || events[0].Key != key.Escape || events[0].Repeat {
		t.Errorf("events[0] = %v", events[0])
	}
	if events[0].Code != "Escape" {
		t.Errorf("Code = %q", events[0].Code)
	}
	if !events[1].Repeat || events[1].Type != key.KeyDown {
		t.Errorf("events[1] = %v, want repeat keydown", events[1])
	}
	if events[2].Type != key.KeyUp {
		t.Errorf("events[2] = %v, want keyup", events[2])
	}
	if events[0].Timestamp.Unix() != 1700000000 {
		t.Errorf("Timestamp = %v", events[0].Timestamp)
	}
}

func TestDecodeModifiers(t *testing.T) {
	dec := NewDecoder()
	events := dec.Decode(stream(
		keyRec(codeShift, valuePress),
		keyRec(codeA, valuePress),
		keyRec(codeA, valueRelease),
		keyRec(codeShift, valueRelease),
		keyRec(codeA, valuePress),
	))

	if events[1].Key != "A" || !events[1].Modifiers.Has(key.ModShift) {
		t.Errorf("shifted a = %v", events[1])
	}
	if events[4].Key != "a" || !events[4].Modifiers.IsEmpty() {
		t.Errorf("plain a = %v", events[4])
	}
	if !dec.Modifiers().IsEmpty() {
		t.Errorf("Modifiers() = %v after release", dec.Modifiers())
	}
}

func TestDecodeBothShiftKeys(t *testing.T) {
	dec := NewDecoder()
	dec.Decode(stream(
		keyRec(codeShift, valuePress),
		keyRec(54, valuePress),
		keyRec(codeShift, valueRelease),
	))
	if !dec.Modifiers().Has(key.ModShift) {
		t.Error("right shift still held")
	}
	dec.Reset()
	if !dec.Modifiers().IsEmpty() {
		t.Error("Reset should clear modifiers")
	}
}

func TestDecodePartialRecord(t *testing.T) {
	dec := NewDecoder()
	buf := stream(keyRec(codeEsc, valuePress))
	if events := dec.Decode(buf[:inputEventSize-1]); len(events) != 0 {
		t.Errorf("partial record decoded to %d events", len(events))
	}
}

// chunkReader returns data in fixed-size chunks to split records.
type chunkReader struct {
	data  []byte
	chunk int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := min(r.chunk, len(p), len(r.data))
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestReadFromChord(t *testing.T) {
	w := input.NewWindow()
	calls := 0
	shortcut.MustRegister(w, shortcut.Config{
		Binding:  shortcut.NewChord("Meta", "k"),
		Callback: func() { calls++ },
	})
	blurs := 0
	w.OnBlur(func() { blurs++ })

	data := stream(
		keyRec(codeMeta, valuePress),
		keyRec(codeMeta, valueRepeat),
		keyRec(codeK, valuePress),
		keyRec(codeK, valueRepeat),
		keyRec(codeK, valueRelease),
		keyRec(codeMeta, valueRelease),
		keyRec(codeK, valuePress),
	)

	src := New(w, zerolog.Nop())
	if err := src.ReadFrom(context.Background(), &chunkReader{data: data, chunk: 10}); err != nil {
		t.Fatalf("ReadFrom() failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if blurs != 1 {
		t.Errorf("blurs = %d, want 1 at end of stream", blurs)
	}
}

func TestReadFromSingleRepeat(t *testing.T) {
	w := input.NewWindow()
	calls := 0
	shortcut.MustRegister(w, shortcut.Config{
		Binding:  shortcut.Single{Key: "Escape"},
		Callback: func() { calls++ },
	})

	data := stream(
		keyRec(codeEsc, valuePress),
		keyRec(codeEsc, valueRepeat),
		keyRec(codeEsc, valueRepeat),
		keyRec(codeEsc, valueRelease),
	)
	New(w, zerolog.Nop()).ReadFrom(context.Background(), bytes.NewReader(data))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestReadFromCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(input.NewWindow(), zerolog.Nop()).ReadFrom(ctx, bytes.NewReader(keyRec(codeCtrl, valuePress)))
	if err != context.Canceled {
		t.Errorf("ReadFrom() = %v, want context.Canceled", err)
	}
}
