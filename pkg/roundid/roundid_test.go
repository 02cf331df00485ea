package roundid_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coordkit/pkg/logger"
	"github.com/dmitrymomot/coordkit/pkg/roundid"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a, b := roundid.New(), roundid.New()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.True(t, roundid.Valid(a))
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"empty", "", false},
		{"simple", "round-1", true},
		{"underscore", "round_1", true},
		{"spaces", "round 1", false},
		{"injection", "id\nlevel=ERROR", false},
		{"too long", strings.Repeat("a", 129), false},
		{"max length", strings.Repeat("a", 128), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundid.Valid(tt.id))
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		ctx := roundid.WithContext(context.Background(), "abc")
		assert.Equal(t, "abc", roundid.FromContext(ctx))
	})

	t.Run("missing", func(t *testing.T) {
		assert.Empty(t, roundid.FromContext(context.Background()))
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // nil context is handled explicitly
		assert.Empty(t, roundid.FromContext(nil))
	})
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	t.Run("keeps valid id", func(t *testing.T) {
		ctx := roundid.WithContext(context.Background(), "round-7")
		got, id := roundid.Ensure(ctx)
		assert.Equal(t, "round-7", id)
		assert.Equal(t, ctx, got)
	})

	t.Run("generates when missing", func(t *testing.T) {
		ctx, id := roundid.Ensure(context.Background())
		assert.NotEmpty(t, id)
		assert.Equal(t, id, roundid.FromContext(ctx))
	})

	t.Run("replaces invalid id", func(t *testing.T) {
		ctx := roundid.WithContext(context.Background(), "bad id")
		ctx, id := roundid.Ensure(ctx)
		assert.NotEqual(t, "bad id", id)
		assert.Equal(t, id, roundid.FromContext(ctx))
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithTextFormatter(),
		logger.WithContextExtractors(roundid.LoggerExtractor()),
	)

	log.InfoContext(context.Background(), "no round")
	assert.NotContains(t, buf.String(), roundid.Key)

	buf.Reset()
	log.InfoContext(roundid.WithContext(context.Background(), "r1"), "with round")
	assert.Contains(t, buf.String(), "round_id=r1")

	attr, ok := roundid.LoggerExtractor()(roundid.WithContext(context.Background(), "r2"))
	require.True(t, ok)
	assert.Equal(t, slog.String("round_id", "r2"), attr)
}
