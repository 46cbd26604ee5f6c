package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

func newModel(fetch FetchFunc) LeadsModel {
	return NewLeadsModel(context.Background(), fetch, time.UTC, DefaultStyles())
}

func TestLeadsModelStartsLoading(t *testing.T) {
	m := newModel(func(context.Context) ([]lead.Lead, error) { return nil, nil })

	assert.Equal(t, LeadsLoading, m.State())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading...")
}

func TestLeadsModelLoadCommand(t *testing.T) {
	want := []lead.Lead{{ID: "1", Name: "Ava"}}
	m := newModel(func(context.Context) ([]lead.Lead, error) { return want, nil })

	msg := m.load()()
	assert.Equal(t, LeadsLoadedMsg{Leads: want}, msg)

	failing := newModel(func(context.Context) ([]lead.Lead, error) { return nil, fmt.Errorf("boom") })
	failed, ok := failing.load()().(LeadsFailedMsg)
	require.True(t, ok)
	assert.EqualError(t, failed.Err, "boom")
}

func TestLeadsModelLoaded(t *testing.T) {
	m := newModel(nil)

	updated, _ := m.Update(LeadsLoadedMsg{Leads: []lead.Lead{}})
	m = updated.(LeadsModel)

	assert.Equal(t, LeadsLoaded, m.State())
	assert.Contains(t, m.View(), EmptyLeadsText)
	assert.Contains(t, m.View(), "0 lead(s)")
}

func TestLeadsModelFailedIsDistinct(t *testing.T) {
	m := newModel(nil)

	updated, _ := m.Update(LeadsFailedMsg{Err: errors.NewUnauthorizedError(401, "Not authenticated")})
	m = updated.(LeadsModel)

	assert.Equal(t, LeadsFailed, m.State())
	assert.True(t, errors.IsAuth(m.Err()))
	view := m.View()
	assert.Contains(t, view, "Could not load leads")
	assert.NotContains(t, view, EmptyLeadsText)
	assert.NotContains(t, view, "Suggestions", "only the first error line is shown")
}

func TestLeadsModelReload(t *testing.T) {
	calls := 0
	m := newModel(func(context.Context) ([]lead.Lead, error) {
		calls++
		return nil, nil
	})

	updated, _ := m.Update(LeadsFailedMsg{Err: fmt.Errorf("offline")})
	m = updated.(LeadsModel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(LeadsModel)
	assert.Equal(t, LeadsLoading, m.State())
	assert.Nil(t, m.Err())
	assert.NotNil(t, cmd)

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd, "no second fetch while one is in flight")
	assert.Equal(t, LeadsLoading, updated.(LeadsModel).State())
	assert.Zero(t, calls, "commands are only run by the program")
}

func TestLeadsModelQuit(t *testing.T) {
	m := newModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLeadsStateString(t *testing.T) {
	assert.Equal(t, "loading", LeadsLoading.String())
	assert.Equal(t, "loaded", LeadsLoaded.String())
	assert.Equal(t, "failed", LeadsFailed.String())
}

func TestLeadsModelQuitsOnRejectedSession(t *testing.T) {
	m := newModel(nil)

	_, cmd := m.Update(LeadsFailedMsg{Err: errors.NewUnauthorizedError(401, "")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(LeadsFailedMsg{Err: errors.NewServerError(500, "")})
	assert.Nil(t, cmd, "other failures stay on screen")
}
