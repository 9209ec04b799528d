package styling

import (
	"strings"

	"github.com/paulmach/osm"
)

// relationKeySeparator joins tag strings into a map key. It cannot appear in OSM tag keys or values.
const relationKeySeparator = "\x1f"

// RelationIndex maps the important tags of relations to the ways that are members of those relations.
// It is built once per extract and is read-only afterwards.
type RelationIndex struct {
	keys         [][]string
	members      map[string]map[osm.WayID]struct{}
	classesByWay map[osm.WayID][]string
}

// NewRelationIndex indexes the relations. The key of a relation is the ordered list of its important
// tag keys and values, e.g. ["route", "bus"]. Relations without important tags are not indexed.
func NewRelationIndex(relations []*osm.Relation) *RelationIndex {
	index := &RelationIndex{
		members:      make(map[string]map[osm.WayID]struct{}),
		classesByWay: make(map[osm.WayID][]string),
	}

	for _, relation := range relations {
		var tags []string
		for _, tag := range relation.Tags {
			if IsImportantTag(tag.Key) {
				tags = append(tags, tag.Key, tag.Value)
			}
		}

		if len(tags) == 0 {
			continue
		}

		key := strings.Join(tags, relationKeySeparator)
		memberSet, ok := index.members[key]
		if !ok {
			memberSet = make(map[osm.WayID]struct{})
			index.members[key] = memberSet
			index.keys = append(index.keys, tags)
		}

		for _, member := range relation.Members {
			if member.Type != osm.TypeWay {
				continue
			}
			wayID := osm.WayID(member.Ref)
			if _, ok := memberSet[wayID]; ok {
				continue
			}
			memberSet[wayID] = struct{}{}
			index.classesByWay[wayID] = append(index.classesByWay[wayID], tags...)
		}
	}

	return index
}

// Keys returns the tag tuples in the order they were first seen
func (idx *RelationIndex) Keys() [][]string {
	return idx.keys
}

// IsMember returns true if the way is a member of a relation carrying exactly the given tag tuple
func (idx *RelationIndex) IsMember(tags []string, wayID osm.WayID) bool {
	memberSet, ok := idx.members[strings.Join(tags, relationKeySeparator)]
	if !ok {
		return false
	}

	_, ok = memberSet[wayID]
	return ok
}

// ClassesForWay returns every tag string of every indexed relation the way belongs to. It may contain duplicates.
func (idx *RelationIndex) ClassesForWay(wayID osm.WayID) []string {
	return idx.classesByWay[wayID]
}
