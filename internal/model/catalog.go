package model

import "strings"

// Catalog is a reusable library of part definitions that problems and
// imported requirement lists refer to by label.
type Catalog struct {
	Parts []Part `json:"parts"`
}

// DefaultCatalog returns a starter catalog of common shapes. The compressed
// variant of each part is the tighter form of the same logical piece; for
// symmetric pieces the two variants coincide.
func DefaultCatalog() Catalog {
	return Catalog{Parts: []Part{
		NewPart("Dot", true, 0,
			MaskFromStrings([]string{"#"}),
			MaskFromStrings([]string{"#"})),
		NewPart("Bar", true, 1,
			MaskFromStrings([]string{"###"}),
			MaskFromStrings([]string{"####"})),
		NewPart("Square", true, 2,
			MaskFromStrings([]string{"##", "##"}),
			MaskFromStrings([]string{"##", "##"})),
		NewPart("Corner", true, 3,
			MaskFromStrings([]string{"#.", "##"}),
			MaskFromStrings([]string{"#..", "#..", "###"})),
		NewPart("Plus", false, 4,
			MaskFromStrings([]string{".#.", "###", ".#."}),
			MaskFromStrings([]string{".#.", "###", ".#."})),
		NewPart("Tee", false, 5,
			MaskFromStrings([]string{"###", ".#."}),
			MaskFromStrings([]string{"###", ".#.", ".#."})),
	}}
}

// FindByLabel returns the index of the part with the given label,
// case-insensitively, or -1 if absent.
func (c Catalog) FindByLabel(label string) int {
	for i, p := range c.Parts {
		if strings.EqualFold(p.Label, label) {
			return i
		}
	}
	return -1
}

// Add appends a part, replacing any existing part with the same ID.
func (c *Catalog) Add(p Part) {
	for i, existing := range c.Parts {
		if existing.ID == p.ID {
			c.Parts[i] = p
			return
		}
	}
	c.Parts = append(c.Parts, p)
}

// Remove deletes the part with the given ID, if present.
func (c *Catalog) Remove(id string) {
	for i, p := range c.Parts {
		if p.ID == id {
			c.Parts = append(c.Parts[:i], c.Parts[i+1:]...)
			return
		}
	}
}
