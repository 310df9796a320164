// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

// TagVector maps a tag id to the number of times it has been attached to one
// item across all users. A missing key means a count of zero.
type TagVector map[int64]int

// Len returns the number of tags with a positive count.
func (v TagVector) Len() int {
	n := 0
	for _, c := range v {
		if c > 0 {
			n++
		}
	}
	return n
}

// Tag is a tag attached to an item, as returned by search and item lookups.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"tag"`
	Count int    `json:"count"`
}

// Vector converts a tag list into a TagVector.
func Vector(tags []Tag) TagVector {
	v := make(TagVector, len(tags))
	for _, t := range tags {
		if t.Count > 0 {
			v[t.ID] += t.Count
		}
	}
	return v
}
