package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/daygrid/internal/commands"
	"github.com/sandeepkv93/daygrid/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.contextBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	var cmds []string
	for _, u := range commands.Names() {
		cmds = append(cmds, strings.TrimSpace(fmt.Sprintf("- %s %s: %s", u.Name, u.Args, u.Help)))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		Commands: cmds,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "command palette"},
		{Key: "t", Action: "toggle theme"},
		{Key: "r", Action: "reload"},
		{Key: "?", Action: "toggle help"},
		{Key: "q", Action: "quit"},
	}
}

func (m Model) contextBindings() []KeyBinding {
	if m.Editor.Active {
		return []KeyBinding{
			{Key: "enter", Action: "save task (title | description)"},
			{Key: "tab", Action: "switch between input and list"},
			{Key: "j/k", Action: "move in list"},
			{Key: "space", Action: "toggle done"},
			{Key: "e", Action: "edit task"},
			{Key: "d", Action: "delete task"},
			{Key: "esc", Action: "close"},
		}
	}
	return append([]KeyBinding{
		{Key: "h/j/k/l", Action: "move selection"},
		{Key: "[/]", Action: "previous/next month"},
		{Key: "g", Action: "go to today"},
		{Key: "enter", Action: "open day"},
	}, globalBindings()...)
}

func (m Model) helpBindings() []key.Binding {
	kbs := m.contextBindings()
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
