package tools

import (
	"fmt"
	"sync"

	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
	"github.com/khanglvm/dev-tools-hub/internal/history"
)

// History action labels for the decimal-binary tool.
const (
	ActionConvert   = "Convert to Binary"
	ActionToDecimal = "Convert to Decimal"
	ActionBitToggle = "Bit Toggle"
)

// DecimalBinary is the one-shot form of the converter.
type DecimalBinary struct{}

func (DecimalBinary) Actions() []string { return []string{"convert", "to-decimal"} }

func (DecimalBinary) Apply(action, input string) (string, error) {
	switch action {
	case "convert":
		v, err := bitvector.ParseDecimal(input)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return v.BinaryText(), nil
	case "to-decimal":
		v, err := bitvector.ParseBinary(input)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return v.DecimalText(), nil
	}
	return "", ErrUnknownAction
}

func (DecimalBinary) historyRecord(action, input, output string) (history.Record, bool) {
	if output == "" {
		return history.Record{}, false
	}
	label := ActionConvert
	if action == "to-decimal" {
		label = ActionToDecimal
	}
	return history.Record{Input: input, Output: output, Action: label}, true
}

// BitSession is the interactive decimal-binary model: one current vector,
// edited by decimal/binary commits and single-bit toggles.
//
// Every successful commit or toggle appends one history entry whose input
// and output are the decimal text before and after the change. Rejected
// input leaves the vector unchanged and records nothing.
type BitSession struct {
	// seq serializes mutations together with their history append so
	// entries land in mutation order. mu guards current alone, letting
	// observers of the recorder read Current without deadlocking.
	seq      sync.Mutex
	mu       sync.Mutex
	current  bitvector.BitVector
	recorder history.Recorder
}

// NewBitSession starts a session at initial. recorder may be nil.
func NewBitSession(recorder history.Recorder, initial bitvector.BitVector) *BitSession {
	return &BitSession{current: initial, recorder: recorder}
}

// Current returns the session's vector.
func (s *BitSession) Current() bitvector.BitVector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetDecimal commits decimal text. Empty text clears the value without
// recording history.
func (s *BitSession) SetDecimal(text string) (bitvector.BitVector, error) {
	next, err := bitvector.ParseDecimal(text)
	if err != nil {
		return s.Current(), err
	}
	return s.commit(next, ActionConvert), nil
}

// SetBinary commits binary text.
func (s *BitSession) SetBinary(text string) (bitvector.BitVector, error) {
	next, err := bitvector.ParseBinary(text)
	if err != nil {
		return s.Current(), err
	}
	return s.commit(next, ActionToDecimal), nil
}

// Toggle flips the bit at position.
func (s *BitSession) Toggle(position int) (bitvector.BitVector, error) {
	s.seq.Lock()
	defer s.seq.Unlock()

	s.mu.Lock()
	before := s.current
	next, err := before.Toggle(position)
	if err != nil {
		s.mu.Unlock()
		return before, err
	}
	s.current = next
	s.mu.Unlock()

	s.record(before, next, ActionBitToggle)
	return next, nil
}

// Reset sets the value back to zero.
func (s *BitSession) Reset() bitvector.BitVector {
	s.seq.Lock()
	defer s.seq.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = bitvector.Zero()
	return s.current
}

func (s *BitSession) commit(next bitvector.BitVector, action string) bitvector.BitVector {
	s.seq.Lock()
	defer s.seq.Unlock()

	s.mu.Lock()
	before := s.current
	s.current = next
	s.mu.Unlock()

	if !next.IsEmpty() {
		s.record(before, next, action)
	}
	return next
}

func (s *BitSession) record(before, after bitvector.BitVector, action string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Append(history.Record{
		ToolID: DecimalBinaryID,
		Input:  before.DecimalText(),
		Output: after.DecimalText(),
		Action: action,
	})
}
