package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/AnatoleLucet/reveal"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderNavBar())

	form := m.contact.lines()

	offset := m.vp.Offset()
	for i := range m.vp.Height() {
		lines = append(lines, m.renderRow(offset+i, form))
	}

	lines = append(lines, m.renderFooter())

	return strings.Join(lines, "\n")
}

func (m *Model) renderNavBar() string {
	active := m.activeSection()

	links := make([]string, 0, len(m.content.Nav))
	for i, link := range m.content.Nav {
		style := navLinkStyle
		if link.Section == active {
			style = navActiveStyle
		}
		links = append(links, navKeyStyle.Render(fmt.Sprintf("%d", i+1))+" "+style.Render(link.Name))
	}

	left := brandStyle.Render(m.content.Hero.Title)
	right := strings.Join(links, "  ")

	gap := 1
	if w := ansi.StringWidth(left) + ansi.StringWidth(right); w+1 < m.width-2 {
		gap = m.width - 2 - w
	}

	style := navBarStyle
	if m.vp.Scrolled(scrolledThreshold) {
		style = navBarScrolledStyle
	}

	return renderBar(style, m.width, left+strings.Repeat(" ", gap)+right)
}

func (m *Model) renderRow(i int, form []string) string {
	if i < 0 || i >= len(m.page.rows) {
		return ""
	}

	r := m.page.rows[i]

	var line string
	switch r.kind {
	case rowText:
		line = r.style(r.text)
	case rowSection:
		line = sectionStyle.Render(r.text)
	case rowCounter:
		line = m.renderCounter(r.index, r.part)
	case rowMarquee:
		line = marqueeStyle.Render(m.marquee.Frame(max(m.width-4, 0)))
	case rowCard:
		line = m.renderCard(r)
	case rowForm:
		if r.index < len(form) {
			line = form[r.index]
		}
	}

	return ansi.Truncate("  "+line, m.width, "")
}

// renderCounter draws the shown glyphs of a counter part, each faded in by
// its own opacity. Hidden glyphs keep their cell so the line does not shift.
func (m *Model) renderCounter(index int, part reveal.Part) string {
	t := m.panel.Text(index, part)
	if t == nil {
		return ""
	}

	ramp := labelFade
	if part == reveal.PartDetail {
		ramp = detailFade
	}

	var b strings.Builder
	for _, g := range t.Glyphs(m.clock.Now()) {
		if !g.Shown {
			b.WriteString(strings.Repeat(" ", ansi.StringWidth(g.Unit)))
			continue
		}

		style := lipgloss.NewStyle().Foreground(fadeColor(ramp, g.Opacity))
		if part == reveal.PartLabel {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(g.Unit))
	}

	return b.String()
}

// renderCard draws a line of a project card once the card started fading in.
func (m *Model) renderCard(r row) string {
	if r.index < 0 || r.index >= len(m.cards) {
		return ""
	}

	card := m.cards[r.index]
	if !card.Shown() {
		return ""
	}

	ramp := detailFade
	if r.title {
		ramp = titleFade
	}

	style := lipgloss.NewStyle().Foreground(fadeColor(ramp, card.Opacity(m.clock.Now())))
	if r.title {
		return style.Bold(true).Render(r.text)
	}

	return style.Render("  " + r.text)
}

// renderFooter puts the progress and the last toast first, the key help
// takes whatever width is left and drops the bindings that do not fit.
func (m *Model) renderFooter() string {
	bg := lipgloss.NewStyle().Background(colorMantle)
	sep := bg.Render("  ")

	var parts []string
	if total := m.panel.Total(); total > 0 {
		parts = append(parts, progressStyle.Background(colorMantle).Render(fmt.Sprintf("%d/%d revealed", m.revealed, total)))
	}
	if m.contact.toast != nil {
		parts = append(parts, m.contact.toast.render())
	}

	status := strings.Join(parts, sep)
	inner := max(m.width-footerStyle.GetHorizontalFrameSize(), 1)

	h := m.help
	h.Width = inner - ansi.StringWidth(status)
	if status != "" {
		h.Width -= ansi.StringWidth(sep)
	}

	var keys help.KeyMap = m.keys
	if m.contact.focused() {
		keys = m.form
	}

	if h.Width > 0 {
		if bindings := h.View(keys); bindings != "" {
			if status != "" {
				status += sep
			}
			status += bindings
		}
	}

	return renderBar(footerStyle, m.width, status)
}

// activeSection is the section under the middle of the window.
func (m *Model) activeSection() string {
	return m.page.sectionAt(m.vp.Offset() + m.vp.Height()/2)
}

// renderBar pads or cuts a single line to fill width, padding included.
func renderBar(style lipgloss.Style, width int, text string) string {
	inner := max(width-style.GetHorizontalFrameSize(), 1)

	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), inner, "")
	if w := ansi.StringWidth(line); w < inner {
		line += strings.Repeat(" ", inner-w)
	}

	return style.MaxWidth(max(width, 1)).Render(line)
}
