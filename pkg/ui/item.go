package ui

import "fmt"

// nodeItem adapts a graph node for the bubbles list panel.
type nodeItem struct {
	id       string
	category string
	degree   int
	group    bool
	selected bool
}

func (i nodeItem) FilterValue() string { return i.id + " " + i.category }

func (i nodeItem) Title() string {
	marker := "  "
	if i.selected {
		marker = "◉ "
	}
	if i.group {
		return marker + i.id + " (group)"
	}
	return marker + i.id
}

func (i nodeItem) Description() string {
	return fmt.Sprintf("%s · %d links", i.category, i.degree)
}
