// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

func TestApplySavesOnSuccess(t *testing.T) {
	store := session.NewMemoryStore()
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 2500, Data: records(1000), Token: "T"}}
	h := newHandler(f)
	ctx := context.Background()

	out, err := Apply(ctx, store, "default", func(ctx context.Context, prev session.Snapshot) Outcome {
		return h.Bulk(ctx, prev, types.SearchRequest{Query: "fish ladder"})
	})
	require.NoError(t, err)
	require.False(t, out.Failed())

	saved, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, out.Snapshot, saved)

	// The next action sees the saved state.
	f.env = types.ResultEnvelope{Total: 2500, Data: records(1000)}
	out, err = Apply(ctx, store, "default", h.Next)
	require.NoError(t, err)
	require.False(t, out.Failed())
	assert.Equal(t, "T", f.bulk[1].Token)

	hist, err := store.History(ctx, "default", 0)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestApplyKeepsStateOnFailure(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, heldBulk()))

	f := &fakeSearcher{err: &scholar.HTTPStatusError{StatusCode: 503}}
	out, err := Apply(ctx, store, "default", func(ctx context.Context, prev session.Snapshot) Outcome {
		return newHandler(f).Bulk(ctx, prev, types.SearchRequest{Query: "salmon"})
	})
	require.NoError(t, err)
	assert.True(t, out.Failed())
	assert.Equal(t, scholar.KindHTTPStatus, out.Kind)

	saved, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, heldBulk(), saved)

	hist, err := store.History(ctx, "default", 1)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "http_status", hist[0].ErrorKind)
	assert.Equal(t, "salmon", hist[0].Query)
}
