package theme

import (
	"slices"
	"strings"
)

// ClassList is an ordered set of CSS class names on one element.
type ClassList struct {
	names []string
}

// NewClassList makes a list with the given initial classes, duplicates dropped.
func NewClassList(names ...string) *ClassList {
	cl := &ClassList{}
	for _, n := range names {
		cl.Add(n)
	}
	return cl
}

// Add appends name if it's not present yet.
func (cl *ClassList) Add(name string) {
	if name == "" || cl.Has(name) {
		return
	}
	cl.names = append(cl.names, name)
}

// Remove drops name if present.
func (cl *ClassList) Remove(name string) {
	cl.names = slices.DeleteFunc(cl.names, func(n string) bool { return n == name })
}

// Has reports whether name is present.
func (cl *ClassList) Has(name string) bool {
	return slices.Contains(cl.names, name)
}

// String renders the value of a class attribute.
func (cl *ClassList) String() string {
	return strings.Join(cl.names, " ")
}

// Document is the styling root of a rendered page: the <html> element and the <body> element.
// Exactly one of the mode markers is present on both after Apply.
type Document struct {
	Root *ClassList
	Body *ClassList
}

// NewDocument makes a Document with no markers set.
func NewDocument() *Document {
	return &Document{Root: NewClassList(), Body: NewClassList()}
}

// Apply marks both nodes with m and clears the other marker.
func (d *Document) Apply(m Mode) {
	for _, cl := range []*ClassList{d.Root, d.Body} {
		cl.Add(m.String())
		cl.Remove(m.Inverse().String())
	}
}
