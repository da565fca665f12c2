package tools

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
	"github.com/khanglvm/dev-tools-hub/internal/history"
)

func newTestSession(t *testing.T, initial string) (*BitSession, *history.Store) {
	t.Helper()
	store := history.NewStore(history.NewMemory(), history.Options{}, zerolog.Nop())
	v, err := bitvector.ParseDecimal(initial)
	if err != nil {
		t.Fatalf("bad initial value: %v", err)
	}
	return NewBitSession(store, v), store
}

func TestBitSessionScenario(t *testing.T) {
	s, store := newTestSession(t, "")

	v, err := s.SetDecimal("42")
	if err != nil {
		t.Fatal(err)
	}
	if want := strings.Repeat("0", 58) + "101010"; v.BinaryText() != want {
		t.Errorf("binary = %s, want %s", v.BinaryText(), want)
	}

	if v, _ = s.Toggle(0); v.DecimalText() != "43" {
		t.Errorf("after toggle 0: %s", v.DecimalText())
	}
	if v, _ = s.Toggle(1); v.DecimalText() != "41" {
		t.Errorf("after toggle 1: %s", v.DecimalText())
	}

	entries := store.List()
	if len(entries) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(entries))
	}

	want := []history.Entry{
		{ToolID: DecimalBinaryID, Input: "43", Output: "41", Action: ActionBitToggle},
		{ToolID: DecimalBinaryID, Input: "42", Output: "43", Action: ActionBitToggle},
		{ToolID: DecimalBinaryID, Input: "", Output: "42", Action: ActionConvert},
	}
	for i, w := range want {
		e := entries[i]
		if e.ToolID != w.ToolID || e.Input != w.Input || e.Output != w.Output || e.Action != w.Action {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
	}
}

func TestBitSessionRejectsInvalidDecimal(t *testing.T) {
	for _, input := range []string{"-1", "18446744073709551616", "abc"} {
		t.Run(input, func(t *testing.T) {
			s, store := newTestSession(t, "7")

			v, err := s.SetDecimal(input)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if v.DecimalText() != "7" || s.Current().DecimalText() != "7" {
				t.Errorf("prior state not retained: %s", s.Current())
			}
			if len(store.List()) != 0 {
				t.Error("rejected input must not record history")
			}
		})
	}
}

func TestBitSessionRejectsBadPosition(t *testing.T) {
	s, store := newTestSession(t, "7")
	if _, err := s.Toggle(64); !errors.Is(err, bitvector.ErrBitPosition) {
		t.Fatalf("expected ErrBitPosition, got %v", err)
	}
	if s.Current().DecimalText() != "7" || len(store.List()) != 0 {
		t.Error("bad toggle must be a no-op")
	}
}

func TestBitSessionEmptyAndReset(t *testing.T) {
	s, store := newTestSession(t, "9")

	v, err := s.SetDecimal("")
	if err != nil || !v.IsEmpty() {
		t.Fatalf("expected empty state, got %v (err %v)", v, err)
	}
	if len(store.List()) != 0 {
		t.Error("clearing the field must not record history")
	}

	v = s.Reset()
	if v.DecimalText() != "0" {
		t.Errorf("reset = %s", v.DecimalText())
	}
}

func TestBitSessionSetBinary(t *testing.T) {
	s, store := newTestSession(t, "1")
	v, err := s.SetBinary("1000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatal(err)
	}
	if v.DecimalText() != "9223372036854775808" {
		t.Errorf("decimal = %s", v.DecimalText())
	}
	if e := store.List()[0]; e.Action != ActionToDecimal || e.Input != "1" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestBitSessionConcurrentTogglesRecordInOrder(t *testing.T) {
	store := history.NewStore(history.NewMemory(), history.Options{Capacity: 64}, zerolog.Nop())
	s := NewBitSession(store, bitvector.Zero())

	// Observers may read the session while an append is in flight.
	unsubscribe := store.Subscribe(func([]history.Entry) { _ = s.Current() })
	defer unsubscribe()

	var wg sync.WaitGroup
	for pos := 0; pos < 32; pos++ {
		wg.Add(1)
		go func(pos int) {
			defer wg.Done()
			if _, err := s.Toggle(pos); err != nil {
				t.Errorf("toggle %d: %v", pos, err)
			}
		}(pos)
	}
	wg.Wait()

	got := store.List()
	if len(got) != 32 {
		t.Fatalf("expected 32 entries, got %d", len(got))
	}
	if got[0].Output != s.Current().DecimalText() {
		t.Errorf("newest output %s, current %s", got[0].Output, s.Current().DecimalText())
	}
	for i := 0; i+1 < len(got); i++ {
		if got[i].Input != got[i+1].Output {
			t.Fatalf("entry %d input %s does not follow entry %d output %s",
				i, got[i].Input, i+1, got[i+1].Output)
		}
	}
	if got[len(got)-1].Input != "0" {
		t.Errorf("oldest entry should start from 0, got %s", got[len(got)-1].Input)
	}
}
