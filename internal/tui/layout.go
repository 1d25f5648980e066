package tui

import (
	"strings"

	"github.com/AnatoleLucet/reveal"
	"github.com/AnatoleLucet/reveal/internal/content"
	"github.com/AnatoleLucet/reveal/viewport"
)

// heroPadding keeps the work section below the first screen so it reveals on scroll.
const heroPadding = 16

type rowKind int

const (
	rowBlank rowKind = iota
	rowText
	rowSection
	rowCounter
	rowMarquee
	rowCard
	rowForm
)

// row is one line of the page.
type row struct {
	kind rowKind

	text  string
	style styleFn

	// counter, card and form rows
	index int
	part  reveal.Part

	// card rows, the title line is drawn brighter
	title bool
}

type styleFn func(...string) string

// page is the static layout: rows and where each section starts.
type page struct {
	rows     []row
	sections map[string]int

	// counter elements, per item then part
	boxes [][2]*viewport.Box

	// project card elements, one per project
	cards []*viewport.Box
}

func layoutPage(c content.Content, vp *viewport.Viewport) *page {
	p := &page{sections: make(map[string]int)}

	add := func(r row) int {
		p.rows = append(p.rows, r)
		return len(p.rows) - 1
	}
	text := func(s string, style styleFn) int { return add(row{kind: rowText, text: s, style: style}) }
	blank := func() int { return add(row{kind: rowBlank}) }

	p.sections[content.SectionHero] = blank()
	text(c.Hero.Title, heroTitleStyle.Render)
	text(c.Hero.Subtitle, heroSubtitleStyle.Render)
	blank()
	for _, line := range c.Hero.Lines {
		text(line, bodyStyle.Render)
	}
	blank()
	text("↓ scroll down", hintStyle.Render)
	for range heroPadding {
		blank()
	}

	p.sections[content.SectionShowcase] = add(row{kind: rowSection, text: "Work"})
	blank()
	for i, project := range c.Projects {
		top := add(row{kind: rowCard, index: i, text: project.Title, title: true})
		if project.Description != "" {
			add(row{kind: rowCard, index: i, text: project.Description})
		}
		if len(project.Tags) > 0 {
			add(row{kind: rowCard, index: i, text: strings.Join(project.Tags, " · ")})
		}

		p.cards = append(p.cards, vp.Place(top, len(p.rows)-top))
		blank()
	}

	p.sections[content.SectionCounter] = add(row{kind: rowSection, text: "Experience"})
	blank()
	for i := range c.Counters {
		label := add(row{kind: rowCounter, index: i, part: reveal.PartLabel})
		detail := add(row{kind: rowCounter, index: i, part: reveal.PartDetail})
		blank()

		p.boxes = append(p.boxes, [2]*viewport.Box{
			vp.Place(label, 1),
			vp.Place(detail, 1),
		})
	}

	p.sections[content.SectionLogos] = add(row{kind: rowSection, text: "Skills"})
	blank()
	add(row{kind: rowMarquee})
	blank()

	title := c.Contact.Title
	if title == "" {
		title = "Contact"
	}
	p.sections[content.SectionContact] = add(row{kind: rowSection, text: title})
	if c.Contact.Subtitle != "" {
		text(c.Contact.Subtitle, heroSubtitleStyle.Render)
	}
	blank()
	for i := range formHeight {
		add(row{kind: rowForm, index: i})
	}
	blank()

	p.sections[content.SectionFooter] = text(c.Footer, hintStyle.Render)
	blank()

	vp.Grow(len(p.rows))

	return p
}

// element returns the box a counter part is drawn in.
func (p *page) element(index int, part reveal.Part) reveal.Element {
	if index < 0 || index >= len(p.boxes) {
		return nil
	}

	return p.boxes[index][part]
}

// card returns the box a project card is drawn in.
func (p *page) card(index int) reveal.Element {
	if index < 0 || index >= len(p.cards) {
		return nil
	}

	return p.cards[index]
}

// sectionAt returns the section the row belongs to.
func (p *page) sectionAt(rowIndex int) string {
	best, bestTop := content.SectionHero, -1
	for name, top := range p.sections {
		if top <= rowIndex && top > bestTop {
			best, bestTop = name, top
		}
	}

	return best
}
