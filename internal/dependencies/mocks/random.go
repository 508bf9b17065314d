package mocks

import (
	"github.com/mcoot/pizzeria/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// BytesResults is a queue of results to return from Bytes
	BytesResults [][]byte
	bytesIndex   int

	// Err, when set, is returned from every Bytes call
	Err error

	// Calls counts Bytes invocations
	Calls int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Bytes returns the next queued result. When the queue is empty it returns
// n bytes counting up from the call number, so successive calls differ.
func (r *MockRandom) Bytes(n int) ([]byte, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	if r.bytesIndex < len(r.BytesResults) {
		result := r.BytesResults[r.bytesIndex]
		r.bytesIndex++
		return result, nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Calls + i)
	}
	return b, nil
}

// QueueBytes adds values to the Bytes result queue
func (r *MockRandom) QueueBytes(values ...[]byte) {
	r.BytesResults = append(r.BytesResults, values...)
}

// FailWithEntropyError makes every subsequent Bytes call fail
func (r *MockRandom) FailWithEntropyError() {
	r.Err = random.ErrEntropyFailure
}

// Reset clears all queued results and injected errors
func (r *MockRandom) Reset() {
	r.BytesResults = nil
	r.bytesIndex = 0
	r.Err = nil
	r.Calls = 0
}
