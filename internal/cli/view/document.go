package view

import (
	"strings"
	"sync"
)

// Document is an ordered set of elements addressable by selector.
type Document struct {
	mu       sync.RWMutex
	order    []*Element
	selector map[string]*Element
}

func NewDocument(els ...*Element) *Document {
	d := &Document{selector: map[string]*Element{}}
	for _, el := range els {
		d.Add(el)
	}
	return d
}

// Add appends el; an element with the same selector is replaced in place.
func (d *Document) Add(el *Element) {
	if el == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.selector[el.Selector]; ok {
		for i, e := range d.order {
			if e == old {
				d.order[i] = el
			}
		}
	} else {
		d.order = append(d.order, el)
	}
	d.selector[el.Selector] = el
}

// Query returns the element for selector, or nil.
func (d *Document) Query(selector string) *Element {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selector[selector]
}

// Render draws visible elements top to bottom.
func (d *Document) Render() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	lines := make([]string, 0, len(d.order))
	for _, el := range d.order {
		if !el.Visible() {
			continue
		}
		lines = append(lines, renderElement(el))
	}
	return strings.Join(lines, "\n")
}
