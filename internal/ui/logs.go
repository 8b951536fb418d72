package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/partysync/internal/logtail"
)

func (m Model) refreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	path := m.logPath
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogFetchLimit)
		if err != nil {
			return logEntriesMsg{{Level: "ERROR", Message: fmt.Sprintf("read log: %v", err)}}
		}
		return logEntriesMsg(entries)
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.ToggleFollow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, k.Top):
		m.logFollow = false
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, k.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	// Scrolling by hand stops following.
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	if !m.logViewport.AtBottom() {
		m.logFollow = false
	}
	return m, cmd
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.SetContent(m.renderLogContent())
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	if len(m.logEntries) == 0 {
		return m.theme.Styles().FaintText.Render("No log entries yet")
	}
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, m.renderLogEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLogEntry(e logtail.Entry) string {
	if e.Level == "" {
		return e.Raw
	}
	styles := m.theme.Styles()
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteByte(' ')
	}
	b.WriteString(styles.LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level)))
	if e.Logger != "" {
		b.WriteString(styles.AccentText.Render(" [" + strings.TrimPrefix(e.Logger, "partysync.") + "]"))
	}
	b.WriteString(" " + styles.Text.Render(e.Message))
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
		}
		b.WriteString(" " + styles.MutedText.Render(strings.Join(parts, " ")))
	}
	return b.String()
}
