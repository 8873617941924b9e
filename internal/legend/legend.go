// Package legend owns the set of series currently selected for display.
//
// The set starts as "every series" and shrinks or grows as legend entries
// are toggled. An empty set is not an empty chart: Filter falls back to the
// full dataset when nothing is selected.
package legend

import (
	"trendchart/internal/models"
)

// Toggler flips the selection of one series
type Toggler interface {
	Toggle(name string)
}

// Visibility answers selection queries for rendering
type Visibility interface {
	IsHidden(name string) bool
	Len() int
	Filter(dataset []models.Series) []models.Series
}

// Controller holds the visible set, in insertion order
type Controller struct {
	names []string
	index map[string]int
}

// NewController creates a controller with an empty visible set
func NewController() *Controller {
	return &Controller{index: make(map[string]int)}
}

// Reset selects every series of the dataset, discarding previous toggles
func (c *Controller) Reset(dataset []models.Series) {
	c.names = c.names[:0]
	c.index = make(map[string]int, len(dataset))
	for _, s := range dataset {
		c.add(s.Name)
	}
}

// Toggle removes name from the visible set when present, adds it otherwise
func (c *Controller) Toggle(name string) {
	if c.Contains(name) {
		c.remove(name)
		return
	}
	c.add(name)
}

// Contains reports whether name is in the visible set
func (c *Controller) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// IsHidden reports whether a legend entry should be drawn as hidden.
// Nothing is hidden while the visible set is empty.
func (c *Controller) IsHidden(name string) bool {
	return len(c.names) > 0 && !c.Contains(name)
}

// Len returns the number of selected series
func (c *Controller) Len() int {
	return len(c.names)
}

// Visible returns the selected names in the order they were added
func (c *Controller) Visible() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Filter returns the series to draw, in dataset order. With an empty
// visible set the whole dataset is returned.
func (c *Controller) Filter(dataset []models.Series) []models.Series {
	if len(c.names) == 0 {
		return dataset
	}
	out := make([]models.Series, 0, len(c.names))
	for _, s := range dataset {
		if c.Contains(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func (c *Controller) add(name string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, ok := c.index[name]; ok {
		return
	}
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
}

func (c *Controller) remove(name string) {
	i, ok := c.index[name]
	if !ok {
		return
	}
	c.names = append(c.names[:i], c.names[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.names); j++ {
		c.index[c.names[j]] = j
	}
}
