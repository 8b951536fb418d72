package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/partysync/internal/party"
)

type rowKind int

const (
	rowMember rowKind = iota
	rowIncomingInvite
	rowJoinRequest
	rowOutgoingInvite
	rowOutgoingRequest
)

// row is one selectable line of the party view.
type row struct {
	kind  rowKind
	id    party.Identity
	party party.PartyID
}

// rows lists the selectable lines in display order.
func rows(v party.View) []row {
	var out []row
	for _, m := range v.Members {
		out = append(out, row{kind: rowMember, id: m.Identity})
	}
	for _, inv := range v.IncomingInvites {
		out = append(out, row{kind: rowIncomingInvite, id: inv.Sender, party: inv.PartyID})
	}
	for _, id := range v.IncomingJoinRequests {
		out = append(out, row{kind: rowJoinRequest, id: id})
	}
	for _, id := range v.OutgoingInvites {
		out = append(out, row{kind: rowOutgoingInvite, id: id})
	}
	for _, inv := range v.OutgoingJoinRequests {
		out = append(out, row{kind: rowOutgoingRequest, id: inv.Sender, party: inv.PartyID})
	}
	return out
}

type rowAction struct {
	name string
	do   func(*party.Client) error
}

func (r row) accept() (rowAction, bool) {
	switch r.kind {
	case rowIncomingInvite:
		return rowAction{fmt.Sprintf("accept invite from %d", r.id), func(c *party.Client) error { return c.AcceptInvite(r.party) }}, true
	case rowJoinRequest:
		return rowAction{fmt.Sprintf("accept join request from %d", r.id), func(c *party.Client) error { return c.AcceptJoinRequest(r.id) }}, true
	}
	return rowAction{}, false
}

func (r row) decline() (rowAction, bool) {
	switch r.kind {
	case rowMember:
		return rowAction{fmt.Sprintf("kick %d", r.id), func(c *party.Client) error { return c.KickMember(r.id) }}, true
	case rowIncomingInvite:
		return rowAction{fmt.Sprintf("decline invite from %d", r.id), func(c *party.Client) error { return c.DeclineInvite(r.party) }}, true
	case rowJoinRequest:
		return rowAction{fmt.Sprintf("reject join request from %d", r.id), func(c *party.Client) error { return c.RejectJoinRequest(r.id) }}, true
	case rowOutgoingInvite:
		return rowAction{fmt.Sprintf("cancel invite to %d", r.id), func(c *party.Client) error { return c.CancelOutgoingInvite(r.id) }}, true
	case rowOutgoingRequest:
		return rowAction{fmt.Sprintf("cancel join request to %d", r.id), func(c *party.Client) error { return c.CancelJoinRequest(r.party) }}, true
	}
	return rowAction{}, false
}

func (r row) promote() (rowAction, bool) {
	if r.kind != rowMember {
		return rowAction{}, false
	}
	return rowAction{fmt.Sprintf("promote %d", r.id), func(c *party.Client) error { return c.PromoteLeader(r.id) }}, true
}

func (m *Model) selectedRow() (row, bool) {
	rs := rows(m.snapshot.View)
	if m.selected < 0 || m.selected >= len(rs) {
		return row{}, false
	}
	return rs[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(rows(m.snapshot.View))
	m.selected = min(m.selected, n-1)
	m.selected = max(m.selected, 0)
}

func (m Model) handlePartyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		m.selected--
	case key.Matches(msg, k.Down):
		m.selected++
	case key.Matches(msg, k.Top):
		m.selected = 0
	case key.Matches(msg, k.Bottom):
		m.selected = len(rows(m.snapshot.View)) - 1

	case key.Matches(msg, k.PrevGroup), key.Matches(msg, k.NextGroup):
		step := 1
		if key.Matches(msg, k.PrevGroup) {
			step = -1
		}
		m.group = party.MatchGroup((int(m.group) + step + int(party.NumMatchGroups)) % int(party.NumMatchGroups))
		g := m.group
		m.updatePartyViewport()
		return m, m.dispatch("select "+g.String(), func(c *party.Client) error {
			c.MutateLocalUIState(func(s *party.UIState) { s.MatchGroup = g })
			return nil
		})
	case key.Matches(msg, k.Queue):
		g := m.group
		return m, m.dispatch("queue "+g.String(), func(c *party.Client) error { return c.RequestQueue(g) })
	case key.Matches(msg, k.CancelQueue):
		g := m.group
		return m, m.dispatch("leave queue "+g.String(), func(c *party.Client) error { return c.CancelQueue(g) })
	case key.Matches(msg, k.ToggleStandby):
		return m, m.dispatch("standby", func(c *party.Client) error {
			if c.CanCancelStandby() {
				return c.CancelStandby()
			}
			return c.RequestStandby()
		})

	case key.Matches(msg, k.ToggleLateJoin):
		return m, m.dispatch("late join", func(c *party.Client) error {
			c.MutateLocalGroupCriteria(func(g *party.GroupCriteria) { g.LateJoinOK = !g.LateJoinOK })
			return nil
		})
	case key.Matches(msg, k.ToggleSurplus):
		return m, m.dispatch("squad surplus", func(c *party.Client) error {
			c.MutateLocalPlayerCriteria(func(p *party.PlayerCriteria) { p.SquadSurplus = !p.SquadSurplus })
			return nil
		})

	case key.Matches(msg, k.Accept):
		return m, m.rowCmd(row.accept)
	case key.Matches(msg, k.Decline):
		return m, m.rowCmd(row.decline)
	case key.Matches(msg, k.Promote):
		return m, m.rowCmd(row.promote)
	case key.Matches(msg, k.Leave):
		return m, m.dispatch("leave party", func(c *party.Client) error { return c.LeaveParty() })
	case key.Matches(msg, k.Chat):
		m.chatting = true
		return m, m.chatInput.Focus()

	case key.Matches(msg, k.CycleJoinMode):
		return m, m.dispatch("join request mode", func(c *party.Client) error {
			return c.SetJoinRequestMode(c.JoinRequestMode().Next())
		})
	case key.Matches(msg, k.ToggleIgnore):
		return m, m.dispatch("ignore invites", func(c *party.Client) error {
			return c.SetIgnoreInvites(!c.IgnoreInvites())
		})
	default:
		return m, nil
	}
	m.clampSelection()
	m.updatePartyViewport()
	return m, nil
}

func (m Model) rowCmd(pick func(row) (rowAction, bool)) tea.Cmd {
	r, ok := m.selectedRow()
	if !ok {
		return nil
	}
	action, ok := pick(r)
	if !ok {
		return nil
	}
	return m.dispatch(action.name, action.do)
}

func (m *Model) updatePartyViewport() {
	if !m.ready {
		return
	}
	m.partyViewport.SetContent(m.renderPartyContent())
}

func (m Model) renderPartyContent() string {
	styles := m.theme.Styles()
	v := m.snapshot.View
	var b strings.Builder
	idx := 0

	line := func(selectable bool, text string) {
		if selectable && idx == m.selected {
			b.WriteString(styles.Selected.Render("▸ " + text))
		} else {
			b.WriteString("  " + text)
		}
		b.WriteString("\n")
		if selectable {
			idx++
		}
	}
	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
	}

	title := "Solo"
	if v.PartyID != 0 {
		title = fmt.Sprintf("Party %d", v.PartyID)
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n")
	for _, mem := range v.Members {
		line(true, m.memberLine(v, mem))
	}

	section("Queues")
	for _, q := range v.Queues {
		marker := "  "
		if q.Group == m.group {
			marker = styles.WarningText.Render("> ")
		}
		b.WriteString(marker)
		fmt.Fprintf(&b, "%-14s ", q.Group)
		b.WriteString(styles.StatusStyle(q.State.String()).Render(q.State.String()))
		b.WriteString("\n")
	}
	standby := fmt.Sprintf("%-14s ", "standby")
	if v.LobbyID != 0 {
		standby = fmt.Sprintf("%-14s ", fmt.Sprintf("lobby %d", v.LobbyID))
	}
	b.WriteString("  " + standby + styles.StatusStyle(v.Standby.String()).Render(v.Standby.String()) + "\n")

	section("Criteria")
	source := "local"
	if v.PartySourced {
		source = "party"
	}
	sync := "synced"
	switch {
	case v.CriteriaBusy:
		sync = "sending"
	case v.CriteriaDirty:
		sync = "pending"
	}
	fmt.Fprintf(&b, "  late join %s  ping limit %d  squad surplus %s  (%s, %s)\n",
		onOff(v.GroupCriteria.LateJoinOK), v.GroupCriteria.CustomPingLimit,
		onOff(v.Local.Player.SquadSurplus), source, sync)

	if len(v.IncomingInvites) > 0 {
		section("Invites")
		for _, inv := range v.IncomingInvites {
			line(true, fmt.Sprintf("%d invites you to party %d (%d members)", inv.Sender, inv.PartyID, len(inv.Members)))
		}
	}
	if len(v.IncomingJoinRequests) > 0 {
		section("Join requests")
		for _, id := range v.IncomingJoinRequests {
			line(true, fmt.Sprintf("%d wants to join", id))
		}
	}
	if len(v.OutgoingInvites) > 0 || len(v.OutgoingJoinRequests) > 0 {
		section("Outgoing")
		for _, id := range v.OutgoingInvites {
			line(true, fmt.Sprintf("invited %d", id))
		}
		for _, inv := range v.OutgoingJoinRequests {
			line(true, fmt.Sprintf("asked to join %d (party %d)", inv.Sender, inv.PartyID))
		}
	}

	section("Preferences")
	fmt.Fprintf(&b, "  join requests %s  ignore invites %s  theme %s\n",
		v.JoinRequestMode, onOff(v.IgnoreInvites), m.theme.Name)

	section("Chat")
	chat := v.Chat
	if len(chat) > chatLines {
		chat = chat[len(chat)-chatLines:]
	}
	for _, msg := range chat {
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render(msg.At.Local().Format("15:04")))
		b.WriteString(" ")
		b.WriteString(styles.InfoText.Render(fmt.Sprintf("%d", msg.From)))
		b.WriteString(" " + msg.Text + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) memberLine(v party.View, mem party.Member) string {
	styles := m.theme.Styles()
	var tags []string
	if mem.Identity == v.Leader {
		tags = append(tags, "leader")
	}
	if mem.Identity == v.Self {
		tags = append(tags, "you")
	}
	status := styles.SuccessText.Render("online")
	if !mem.Online {
		status = styles.FaintText.Render("offline")
	}
	text := fmt.Sprintf("%-10d %s", mem.Identity, status)
	if len(tags) > 0 {
		text += " " + styles.MutedText.Render("("+strings.Join(tags, ", ")+")")
	}
	if m.width >= LayoutCompactWidth && mem.Criteria.Region != "" {
		text += " " + styles.FaintText.Render(mem.Criteria.Region)
	}
	return text
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// queueSummary is the compact queue state shown in the header.
func queueSummary(v party.View) string {
	var active []string
	for _, q := range v.Queues {
		if q.Effective {
			active = append(active, q.Group.String())
		}
	}
	if v.Standby != party.QueueIdle {
		active = append(active, "standby")
	}
	if len(active) == 0 {
		return "not queued"
	}
	slices.Sort(active)
	return "queued: " + strings.Join(active, ", ")
}
