package factory

import (
	"time"

	"github.com/mcoot/pizzeria/internal/config"
	"github.com/mcoot/pizzeria/internal/dependencies/mocks"
	"github.com/mcoot/pizzeria/internal/storage/memory"
	"github.com/mcoot/pizzeria/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and in-memory storage.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		memory.New(),
		memory.NewSessionStore(mockClock),
		mockClock,
		mockRandom,
		config.Default(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
