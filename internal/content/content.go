package content

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Counter is one entry of the counter panel.
type Counter struct {
	Label  string `toml:"label"`
	Detail string `toml:"detail"`
}

// Logo is one name of the logo strip.
type Logo struct {
	Name string `toml:"name"`
}

// NavLink jumps to a section of the page.
type NavLink struct {
	Name    string `toml:"name"`
	Section string `toml:"section"`
}

// Project is one card of the work section.
type Project struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Tags        []string `toml:"tags"`
}

// Contact heads the contact form.
type Contact struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
}

// Hero is the page heading.
type Hero struct {
	Title    string   `toml:"title"`
	Subtitle string   `toml:"subtitle"`
	Lines    []string `toml:"lines"`
}

// Content is the top-level TOML structure.
type Content struct {
	Hero     Hero      `toml:"hero"`
	Nav      []NavLink `toml:"nav"`
	Projects []Project `toml:"project"`
	Counters []Counter `toml:"counter"`
	Logos    []Logo    `toml:"logo"`
	Contact  Contact   `toml:"contact"`
	Footer   string    `toml:"footer"`
}

// Sections the page is made of, in order.
const (
	SectionHero     = "hero"
	SectionShowcase = "work"
	SectionCounter  = "counter"
	SectionLogos    = "logos"
	SectionContact  = "contact"
	SectionFooter   = "footer"
)

const defaultContentTOML = `# Page content
footer = "Built with Go. Scroll with j/k, jump with the numbers, quit with q."

[hero]
title = "Hi, I build software"
subtitle = "Backend services, terminal tools and the odd animation."
lines = [
  "I like small programs that do one thing well,",
  "readable code, and tests that tell a story.",
  "",
  "Scroll down to see what I have been up to.",
]

[[nav]]
name = "Home"
section = "hero"

[[nav]]
name = "Work"
section = "work"

[[nav]]
name = "Experience"
section = "counter"

[[nav]]
name = "Skills"
section = "logos"

[[nav]]
name = "Contact"
section = "contact"

[[project]]
title = "Y.E.A.H. - AI-Powered Customer Service Agent"
description = "Answers support tickets around the clock."
tags = ["Java", "React"]

[[project]]
title = "LaWander - AI Travel Planner"
description = "Builds a day by day trip from a few preferences."
tags = ["Java", "React"]

[[project]]
title = "vpnHead - Portal for VPN Services and Information"
description = "Compares providers and explains the jargon."
tags = ["Java", "React"]

[[counter]]
label = "Bachelor of Science"
detail = "Computer Science"

[[counter]]
label = "5+ Years"
detail = "Writing production Go"

[[counter]]
label = "30+ Projects"
detail = "Shipped and maintained"

[[counter]]
label = "Open Source"
detail = "Contributor and maintainer"

[[logo]]
name = "Go"

[[logo]]
name = "PostgreSQL"

[[logo]]
name = "Docker"

[[logo]]
name = "Kubernetes"

[[logo]]
name = "Linux"

[[logo]]
name = "gRPC"

[contact]
title = "Get in Touch - Let's Connect"
subtitle = "Have questions or ideas? Let's talk!"
`

// Default returns the built-in content.
func Default() Content {
	c, err := Parse([]byte(defaultContentTOML))
	if err != nil {
		panic(fmt.Sprintf("content: built-in content is invalid: %v", err))
	}

	return c
}

// Load reads content from path, or returns the built-in content when path is empty.
func Load(path string) (Content, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content: %w", err)
	}

	return Parse(data)
}

// Parse parses TOML bytes into page content.
func Parse(data []byte) (Content, error) {
	var c Content
	if err := toml.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("parse content: %w", err)
	}

	for i, counter := range c.Counters {
		if counter.Label == "" {
			return Content{}, fmt.Errorf("counter[%d]: label is required", i)
		}
	}

	for i, p := range c.Projects {
		if p.Title == "" {
			return Content{}, fmt.Errorf("project[%d]: title is required", i)
		}
	}

	for i, link := range c.Nav {
		if link.Name == "" {
			return Content{}, fmt.Errorf("nav[%d]: name is required", i)
		}
		switch link.Section {
		case SectionHero, SectionShowcase, SectionCounter, SectionLogos, SectionContact, SectionFooter:
		default:
			return Content{}, fmt.Errorf("nav[%d] %q: unknown section %q", i, link.Name, link.Section)
		}
	}

	return c, nil
}

// LogoNames returns the names of the logos, in order.
func (c Content) LogoNames() []string {
	names := make([]string, len(c.Logos))
	for i, l := range c.Logos {
		names[i] = l.Name
	}

	return names
}
