package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapp/khata/internal/testutil"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.Generate()
	b := gen.Generate()

	assert.NotEqual(t, a, b)
	for _, id := range []string{a, b} {
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	}
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("one", "two")

	assert.Equal(t, "one", gen.Generate())
	assert.Equal(t, "two", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestEngineOptions(t *testing.T) {
	eng := New(
		WithIDGenerator(NewFixedGenerator("fixed-1")),
		WithNow(testutil.Now),
	)

	assert.Equal(t, "fixed-1", eng.NewID())
	assert.Equal(t, "2026-08-01T10:00:00Z", eng.Timestamp())
}

func TestTimestampIsUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	eng := New(WithNow(func() time.Time {
		return time.Date(2026, time.August, 1, 15, 30, 0, 0, ist)
	}))

	assert.Equal(t, "2026-08-01T10:00:00Z", eng.Timestamp())
}
