package ingest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New("  彼はビールを飲んだ。 \n")
	assert.Equal(t, "彼はビールを飲んだ。", s.Text)
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.False(t, s.CreatedAt.IsZero())

	// decomposed ガ (カ + combining dakuten) is composed
	assert.Equal(t, "ガ", New("\u30ab\u3099").Text)

	assert.Equal(t, "", New("   ").Text)
}

func TestLines(t *testing.T) {
	got := Lines("一行目\n\n  \n二行目\n")
	require.Len(t, got, 2)
	assert.Equal(t, "一行目", got[0].Text)
	assert.Equal(t, "二行目", got[1].Text)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestQueue(t *testing.T) {
	q := NewQueue(1)
	s, err := q.Publish("猫")
	require.NoError(t, err)

	_, err = q.Publish("犬")
	assert.ErrorIs(t, err, ErrQueueFull)

	assert.Equal(t, s, <-q.C())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.Send(ctx, New("鳥")))
	cancel()
	assert.ErrorIs(t, q.Send(ctx, New("魚")), context.Canceled)
}
