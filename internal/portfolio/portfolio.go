// Package portfolio loads the static profile shown on the home,
// certificates and skills pages.
package portfolio

import (
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed default_profile.toml
var defaultProfile []byte

// Highlight is a headline metric on the home page
type Highlight struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
	Note  string `toml:"note"`
}

type Contact struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
	URL   string `toml:"url"`
}

// Education is one degree; Details is markdown
type Education struct {
	Title       string        `toml:"title"`
	Institution string        `toml:"institution"`
	Period      string        `toml:"period"`
	Details     string        `toml:"details"`
	DetailsHTML template.HTML `toml:"-"`
}

type Course struct {
	Title    string `toml:"title"`
	Provider string `toml:"provider"`
	Year     int    `toml:"year"`
}

// Skill is a named proficiency with Level in [0,1]
type Skill struct {
	Name  string  `toml:"name"`
	Level float64 `toml:"level"`
}

// Percent is Level as a whole percentage
func (s Skill) Percent() int {
	return int(s.Level*100 + 0.5)
}

// Tier is a coarse label for Level
func (s Skill) Tier() string {
	switch {
	case s.Level >= 0.8:
		return "Advanced"
	case s.Level >= 0.5:
		return "Intermediate"
	}
	return "Basic"
}

// Group is a titled list of markdown items
type Group struct {
	Name      string          `toml:"name"`
	Items     []string        `toml:"items"`
	ItemsHTML []template.HTML `toml:"-"`
}

// Profile is the whole portfolio document
type Profile struct {
	Name       string      `toml:"name"`
	Headline   string      `toml:"headline"`
	About      string      `toml:"about"`
	Objective  string      `toml:"objective"`
	Highlights []Highlight `toml:"highlights"`
	Contacts   []Contact   `toml:"contacts"`
	Education  []Education `toml:"education"`
	Courses    []Course    `toml:"courses"`
	Skills     []Skill     `toml:"skills"`
	Tools      []Group     `toml:"tools"`
	SoftSkills []Group     `toml:"soft_skills"`

	AboutHTML     template.HTML `toml:"-"`
	ObjectiveHTML template.HTML `toml:"-"`
}

// Load reads the profile at path. An empty path or a missing file falls
// back to the embedded default profile; a file that exists but does not
// decode is an error.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Portfolio] %s not found, using default profile", path)
			return Default()
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, err)
	}
	return p, nil
}

// Default returns the embedded profile
func Default() (*Profile, error) {
	return Parse(defaultProfile)
}

// Parse decodes a TOML profile, clamps skill levels and renders markdown
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if _, err := toml.Decode(string(data), &p); err != nil {
		return nil, err
	}
	p.normalize()
	return &p, nil
}

func (p *Profile) normalize() {
	for i := range p.Skills {
		p.Skills[i].Level = clamp(p.Skills[i].Level)
	}
	p.AboutHTML = Markdown(p.About)
	p.ObjectiveHTML = Markdown(p.Objective)
	for i := range p.Education {
		p.Education[i].DetailsHTML = Markdown(p.Education[i].Details)
	}
	renderGroups(p.Tools)
	renderGroups(p.SoftSkills)
}

func renderGroups(groups []Group) {
	for i := range groups {
		groups[i].ItemsHTML = make([]template.HTML, len(groups[i].Items))
		for j, item := range groups[i].Items {
			groups[i].ItemsHTML[j] = Markdown(item)
		}
	}
}

func clamp(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Markdown renders md to HTML. Raw HTML in the source is skipped.
func Markdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}
