package engine

import "math/rand"

// DigitStream is an infinite, seeded sequence of uniform decimal digits with
// a fixed look-ahead window of LookaheadSize upcoming values. Only the head
// of the window is ever placed; the rest exists for display.
//
// The stream is not safe for concurrent use; the engine serializes access.
type DigitStream struct {
	seed     int64
	rng      *rand.Rand
	window   [LookaheadSize]int
	consumed int
}

// NewDigitStream creates a stream seeded with the given value and fills the
// look-ahead window. Equal seeds produce identical streams.
func NewDigitStream(seed int64) *DigitStream {
	s := &DigitStream{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
	for i := range s.window {
		s.window[i] = s.rng.Intn(NumDigits)
	}
	return s
}

// RestoreDigitStream rebuilds a stream that has already consumed a number of
// digits by replaying them, so the window matches the persisted state.
func RestoreDigitStream(seed int64, consumed int) *DigitStream {
	s := NewDigitStream(seed)
	for i := 0; i < consumed; i++ {
		s.Next()
	}
	return s
}

// Peek returns the n-th upcoming digit (1-indexed) without consuming it.
func (s *DigitStream) Peek(n int) (int, error) {
	if n < 1 || n > LookaheadSize {
		return 0, ErrPeekOutOfRange
	}
	return s.window[n-1], nil
}

// Next consumes and returns the digit at position 1, shifts the window and
// draws a fresh digit into the last slot. The stream never runs out.
func (s *DigitStream) Next() int {
	head := s.window[0]
	copy(s.window[:], s.window[1:])
	s.window[LookaheadSize-1] = s.rng.Intn(NumDigits)
	s.consumed++
	return head
}

// Window returns a copy of the upcoming digits, head first.
func (s *DigitStream) Window() []int {
	out := make([]int, LookaheadSize)
	copy(out, s.window[:])
	return out
}

// Seed returns the seed the stream was created with.
func (s *DigitStream) Seed() int64 {
	return s.seed
}

// Consumed returns how many digits have been taken via Next.
func (s *DigitStream) Consumed() int {
	return s.consumed
}
