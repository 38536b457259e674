package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name         string
		current      Page
		selected     Page
		wantNext     Page
		wantRedirect bool
	}{
		{"same page", Home, Home, Home, false},
		{"home to dashboard", Home, Dashboard, Dashboard, true},
		{"analysis to skills", DataAnalysis, Skills, Skills, true},
		{"unknown selection keeps current", Certificates, Page("nope"), Certificates, false},
		{"empty selection keeps current", Skills, Page(""), Skills, false},
		{"unknown current falls back to home", Page("bogus"), Home, Home, false},
		{"unknown current to known page", Page("bogus"), Dashboard, Dashboard, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, redirect := Transition(tt.current, tt.selected)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantRedirect, redirect)
		})
	}
}

func TestTransitionIsPure(t *testing.T) {
	for _, from := range All {
		for _, to := range All {
			n1, r1 := Transition(from, to)
			n2, r2 := Transition(from, to)
			assert.Equal(t, n1, n2)
			assert.Equal(t, r1, r2)
			assert.Equal(t, from != to, r1)
		}
	}
}

func TestParseAndPaths(t *testing.T) {
	p, ok := Parse("dashboard")
	assert.True(t, ok)
	assert.Equal(t, Dashboard, p)
	assert.Equal(t, "/dashboard", p.Path())

	_, ok = Parse("admin")
	assert.False(t, ok)
	assert.Equal(t, "/", Page("admin").Path())
}

func TestMenu(t *testing.T) {
	menu := NewContext(Skills).Menu()
	assert.Len(t, menu, len(All))
	active := 0
	for _, item := range menu {
		if item.Active {
			active++
			assert.Equal(t, Skills, item.Page)
		}
	}
	assert.Equal(t, 1, active)

	assert.Equal(t, Home, NewContext(Page("x")).Current)
}
