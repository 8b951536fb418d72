package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderMain renders the header, the active view and the status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	switch m.currentView {
	case ViewLogs:
		b.WriteString(m.logViewport.View())
	default:
		b.WriteString(m.partyViewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	v := m.snapshot.View

	conn := styles.SuccessText.Render("online")
	switch {
	case !m.snapshot.HasView || m.snapshot.LastPoll.IsZero():
		conn = styles.MutedText.Render("connecting")
	case m.snapshot.IsOffline():
		conn = styles.DangerText.Render("offline")
	}

	parts := []string{
		bg.Render("partysync", styles.Logo),
		bg.Render(fmt.Sprintf("player %d", v.Self), styles.Text),
		conn,
		bg.Render(queueSummary(v), styles.MutedText),
	}
	if v.IsLeader && v.PartyID != 0 {
		parts = append(parts, bg.Render("leader", styles.AccentText))
	}
	if v.LastErrorCode != 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("error %d", v.LastErrorCode), styles.DangerText))
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.chatting {
		return m.chatInput.View()
	}
	snap := m.snapshot
	switch {
	case snap.LastActionError != nil && time.Since(snap.LastActionAt) < actionEcho:
		return styles.DangerText.Render(fmt.Sprintf("%s: %v", snap.LastAction, snap.LastActionError))
	case snap.LastAction != "" && time.Since(snap.LastActionAt) < actionEcho:
		return styles.MutedText.Render(snap.LastAction + ": ok")
	case snap.LastError != nil:
		return styles.WarningText.Render(fmt.Sprintf("poll: %v", snap.LastError))
	}
	if m.currentView == ViewLogs {
		follow := "following"
		if !m.logFollow {
			follow = "paused"
		}
		return styles.FaintText.Render(fmt.Sprintf("%s (%s)", m.logPath, follow))
	}
	return ""
}

func (m Model) renderCommandBar() string {
	return m.help.View(m.keys)
}

const actionEcho = 5 * time.Second
