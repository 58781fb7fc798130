package conjugate

import "slices"

// Index maps a realized surface to the labels that produce it.
type Index map[string][]string

// NewIndex inverts one or more tables. Labels of a surface are sorted and
// deduplicated.
func NewIndex(tables ...Table) Index {
	ix := make(Index)
	for _, t := range tables {
		for label, forms := range t {
			for _, f := range forms {
				if !slices.Contains(ix[f], label) {
					ix[f] = append(ix[f], label)
				}
			}
		}
	}
	for _, labels := range ix {
		slices.Sort(labels)
	}
	return ix
}

// Detect returns the labels whose realizations contain surface exactly.
func (ix Index) Detect(surface string) []string {
	return ix[surface]
}

// Contains reports whether surface is realized by any label.
func (ix Index) Contains(surface string) bool {
	_, ok := ix[surface]
	return ok
}
