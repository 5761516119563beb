package document

import "sort"

// IDMap maps external document ids to the filenames they were uploaded as
type IDMap map[string]string

// Resolver looks up document ids by filename stem
type Resolver struct {
	byStem map[string]DocID
}

// NewResolver indexes idMap by filename stem. When two ids share a stem the
// id sorting last wins, so resolution does not depend on map order.
func NewResolver(idMap IDMap) *Resolver {
	ids := make([]string, 0, len(idMap))
	for id := range idMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byStem := make(map[string]DocID, len(idMap))
	for _, id := range ids {
		byStem[Stem(idMap[id])] = DocID(id)
	}
	return &Resolver{byStem: byStem}
}

// Resolve returns the id for filename, or the zero DocID when unknown.
// A nil resolver resolves nothing.
func (r *Resolver) Resolve(filename string) DocID {
	if r == nil {
		return ""
	}
	return r.byStem[Stem(filename)]
}

// Len returns the number of indexed stems
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byStem)
}
