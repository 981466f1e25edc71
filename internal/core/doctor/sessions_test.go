package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMux struct {
	sessions []string
	listErr  error
	killErr  error
	killed   []string
}

func (f *fakeMux) ListSessions(_ context.Context) ([]string, error) {
	return f.sessions, f.listErr
}

func (f *fakeMux) KillSession(_ context.Context, name string) error {
	if f.killErr != nil {
		return f.killErr
	}
	f.killed = append(f.killed, name)
	return nil
}

func TestSessionsCheck_AllMatched(t *testing.T) {
	mux := &fakeMux{sessions: []string{"dt-feat-x", "dt-main", "personal"}}

	check := NewSessionsCheck(mux, []string{"dt-feat-x", "dt-main"}, false)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "2 matched to worktrees", result.Items[0].Detail)
}

func TestSessionsCheck_OrphanWarns(t *testing.T) {
	mux := &fakeMux{sessions: []string{"dt-feat-x", "dt-deleted-branch"}}

	check := NewSessionsCheck(mux, []string{"dt-feat-x"}, false)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, "dt-deleted-branch", result.Items[0].Label)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
	assert.True(t, result.Items[0].Fixable)
	assert.Empty(t, mux.killed)
}

func TestSessionsCheck_AutofixKills(t *testing.T) {
	mux := &fakeMux{sessions: []string{"dt-feat-x", "dt-deleted-branch", "personal"}}

	check := NewSessionsCheck(mux, []string{"dt-feat-x"}, true)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, []string{"dt-deleted-branch"}, mux.killed)
}

func TestSessionsCheck_AutofixKillFails(t *testing.T) {
	mux := &fakeMux{
		sessions: []string{"dt-deleted-branch"},
		killErr:  assert.AnError,
	}

	check := NewSessionsCheck(mux, nil, true)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestSessionsCheck_NoServerIsClean(t *testing.T) {
	mux := &fakeMux{listErr: assert.AnError}

	check := NewSessionsCheck(mux, nil, false)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "not running", result.Items[0].Detail)
}

func TestSessionsCheck_ForeignSessionsIgnored(t *testing.T) {
	mux := &fakeMux{sessions: []string{"personal", "work-notes"}}

	check := NewSessionsCheck(mux, nil, true)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Empty(t, mux.killed)
}
