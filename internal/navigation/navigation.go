// Package navigation holds the page set of the dashboard and the pure
// transition function between pages. The current page is always passed in
// explicitly; nothing here keeps session state.
package navigation

// Page identifies one top-level view
type Page string

const (
	Home         Page = "home"
	Certificates Page = "certificates"
	Skills       Page = "skills"
	DataAnalysis Page = "analysis"
	Dashboard    Page = "dashboard"
)

type pageInfo struct {
	title string
	path  string
}

var pages = map[Page]pageInfo{
	Home:         {title: "Home", path: "/"},
	Certificates: {title: "Certificates", path: "/certificates"},
	Skills:       {title: "Skills", path: "/skills"},
	DataAnalysis: {title: "Data Analysis", path: "/analysis"},
	Dashboard:    {title: "Statistics Dashboard", path: "/dashboard"},
}

// All lists the pages in menu order
var All = []Page{Home, Certificates, Skills, DataAnalysis, Dashboard}

// Parse maps a slug to a page
func Parse(slug string) (Page, bool) {
	p := Page(slug)
	_, ok := pages[p]
	return p, ok
}

// Known reports whether p is one of the defined pages
func (p Page) Known() bool {
	_, ok := pages[p]
	return ok
}

// Title is the menu label of p
func (p Page) Title() string {
	return pages[p].title
}

// Path is the route serving p. Unknown pages resolve to the home route.
func (p Page) Path() string {
	if info, ok := pages[p]; ok {
		return info.path
	}
	return pages[Home].path
}

// Transition decides the page to show after the user selects a menu entry.
// A redirect is needed only when a known page other than the current one
// was selected; an unknown selection keeps the current page.
func Transition(current, selected Page) (next Page, redirect bool) {
	if !current.Known() {
		current = Home
	}
	if !selected.Known() || selected == current {
		return current, false
	}
	return selected, true
}

// Item is one rendered menu entry
type Item struct {
	Page   Page
	Title  string
	Path   string
	Active bool
}

// Context is the navigation state handed to every page view model
type Context struct {
	Current Page
}

// NewContext builds the context for page p
func NewContext(p Page) Context {
	if !p.Known() {
		p = Home
	}
	return Context{Current: p}
}

// Menu returns the menu entries with the current page marked active
func (c Context) Menu() []Item {
	items := make([]Item, 0, len(All))
	for _, p := range All {
		items = append(items, Item{
			Page:   p,
			Title:  p.Title(),
			Path:   p.Path(),
			Active: p == c.Current,
		})
	}
	return items
}
