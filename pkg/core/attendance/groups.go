package attendance

import "github.com/gamenight/attendance/pkg/core/model"

// Groups maps departments to their members, remembering the order in which
// departments were first seen.
type Groups[T any] struct {
	keys    []model.Department
	members map[model.Department][]T
}

// NewGroups returns an empty grouping
func NewGroups[T any]() *Groups[T] {
	return &Groups[T]{members: make(map[model.Department][]T)}
}

// Add appends item to the bucket for dept, creating the bucket if needed
func (g *Groups[T]) Add(dept model.Department, item T) {
	if _, ok := g.members[dept]; !ok {
		g.keys = append(g.keys, dept)
	}
	g.members[dept] = append(g.members[dept], item)
}

// Departments returns the department keys in first-seen order
func (g *Groups[T]) Departments() []model.Department {
	if g == nil {
		return nil
	}
	out := make([]model.Department, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the members of a department
func (g *Groups[T]) Get(dept model.Department) []T {
	if g == nil {
		return nil
	}
	return g.members[dept]
}

// Len returns the number of departments
func (g *Groups[T]) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Group is one department bucket, used when a grouping is serialised
type Group[T any] struct {
	Department model.Department `json:"department"`
	Members    []T              `json:"members"`
}

// List returns the buckets in first-seen order
func (g *Groups[T]) List() []Group[T] {
	if g == nil {
		return nil
	}
	out := make([]Group[T], 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, Group[T]{Department: k, Members: g.members[k]})
	}
	return out
}
