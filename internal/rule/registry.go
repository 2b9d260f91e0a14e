package rule

import "strings"

// All returns every kind in catalog order.
func All() []Kind {
	kinds := make([]Kind, len(catalog))
	for i := range catalog {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ByID returns the kind with the given ID. The match is case-insensitive.
func ByID(id string) (Kind, bool) {
	for _, k := range All() {
		if strings.EqualFold(k.ID(), id) {
			return k, true
		}
	}
	return 0, false
}

// ByName returns the kind with the given name.
func ByName(name string) (Kind, bool) {
	for _, k := range All() {
		if k.Name() == name {
			return k, true
		}
	}
	return 0, false
}

// Lookup resolves query as an ID first, then as a name.
func Lookup(query string) (Kind, bool) {
	if k, ok := ByID(query); ok {
		return k, true
	}
	return ByName(query)
}
