package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/router"
)

func newTestModel() AppModel {
	return newAppModel(Options{Session: quest.New(quest.Options{})})
}

// step sends msg and feeds a resulting router message back in.
func step(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

func TestApp_NavigateAndBack(t *testing.T) {
	m := newTestModel()
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m = step(m, tea.KeyPressMsg{Code: '2', Text: "2"})
	require.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Your Goals", m.router.Active().Title())

	m = step(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_EscAtRootStays(t *testing.T) {
	m := step(newTestModel(), tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ViewShowsHeaderAndHints(t *testing.T) {
	m := step(newTestModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	content := m.render()
	assert.Contains(t, content, "Eternal Quest")
	assert.Contains(t, content, "Lv 1")
	assert.Contains(t, content, "Menu")
}

func TestApp_TooSmall(t *testing.T) {
	m := step(newTestModel(), tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small!")
}

func TestRun_RequiresSession(t *testing.T) {
	assert.Error(t, Run(Options{}))
}
