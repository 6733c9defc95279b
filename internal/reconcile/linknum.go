package reconcile

import (
	"cmp"
	"slices"

	"sdntopo/internal/domain"
)

// sortLinks orders links by (source index, target index), keeping input
// order among equal pairs
func sortLinks(links []*domain.Link) {
	slices.SortStableFunc(links, func(a, b *domain.Link) int {
		if c := cmp.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})
}

// assignLinkNums numbers runs of links sharing a (source, target) pair 1..k.
// Links must already be sorted.
func assignLinkNums(links []*domain.Link) {
	for i, l := range links {
		if i > 0 && l.Source == links[i-1].Source && l.Target == links[i-1].Target {
			l.LinkNum = links[i-1].LinkNum + 1
		} else {
			l.LinkNum = 1
		}
	}
}

// nextLinkNum returns the rank a new link with the given key takes
func nextLinkNum(links []*domain.Link, key domain.LinkKey) int {
	n := 0
	for _, l := range links {
		if l.Key() == key {
			n++
		}
	}
	return n + 1
}
