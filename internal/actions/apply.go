// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"fmt"

	"github.com/pdiddy/scholar-search/internal/session"
)

// Action is one user action bound to its arguments.
type Action func(ctx context.Context, prev session.Snapshot) Outcome

// Apply loads session id from store, runs act, records the history entry
// and saves the new snapshot when the action succeeded. The returned error
// covers store failures only; action failures are reported in the Outcome.
func Apply(ctx context.Context, store session.Store, id string, act Action) (Outcome, error) {
	prev, err := store.Load(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	out := act(ctx, prev)
	if err := store.Record(ctx, out.Entry); err != nil {
		return out, fmt.Errorf("recording history: %w", err)
	}
	if out.Failed() {
		return out, nil
	}
	if err := store.Save(ctx, out.Snapshot); err != nil {
		return out, err
	}
	return out, nil
}
