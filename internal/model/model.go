package model

import (
	"github.com/google/uuid"
)

// Model is one side of a comparison: the full entity graph of a semantic
// model. Collections are ordered; entity names are unique within each
// collection.
type Model struct {
	Name          string          `json:"name"`
	DatabaseName  string          `json:"-"`
	DirectQuery   bool            `json:"directQuery,omitempty"`
	Tables        []*Table        `json:"tables,omitempty"`
	Relationships []*Relationship `json:"relationships,omitempty"`
	Perspectives  []*Perspective  `json:"perspectives,omitempty"`
	Cultures      []*Culture      `json:"cultures,omitempty"`
	Roles         []*Role         `json:"roles,omitempty"`
	Connections   []*Connection   `json:"dataSources,omitempty"`
}

// New creates an empty model graph.
func New(name string) *Model {
	return &Model{Name: name}
}

// Table returns the named table, or nil.
func (m *Model) Table(name string) *Table {
	for _, t := range m.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Column resolves (table name, column name), or nil.
func (m *Model) Column(tableName, columnName string) *Column {
	if t := m.Table(tableName); t != nil {
		return t.Column(columnName)
	}
	return nil
}

// Measure resolves (table name, measure name), or nil.
func (m *Model) Measure(tableName, measureName string) *Measure {
	if t := m.Table(tableName); t != nil {
		return t.Measure(measureName)
	}
	return nil
}

// Hierarchy resolves (table name, hierarchy name), or nil.
func (m *Model) Hierarchy(tableName, hierarchyName string) *Hierarchy {
	if t := m.Table(tableName); t != nil {
		return t.Hierarchy(hierarchyName)
	}
	return nil
}

// Level resolves (table name, hierarchy name, level name), or nil.
func (m *Model) Level(tableName, hierarchyName, levelName string) *Level {
	if h := m.Hierarchy(tableName, hierarchyName); h != nil {
		return h.Level(levelName)
	}
	return nil
}

// Relationship returns the relationship with the given identity name, or nil.
func (m *Model) Relationship(name string) *Relationship {
	for _, r := range m.Relationships {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Perspective returns the named perspective, or nil.
func (m *Model) Perspective(name string) *Perspective {
	for _, p := range m.Perspectives {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Culture returns the named culture, or nil.
func (m *Model) Culture(name string) *Culture {
	for _, c := range m.Cultures {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Role returns the named role, or nil.
func (m *Model) Role(name string) *Role {
	for _, r := range m.Roles {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Connection returns the named connection, or nil.
func (m *Model) Connection(name string) *Connection {
	for _, c := range m.Connections {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddTable appends the table. The caller guarantees name uniqueness.
func (m *Model) AddTable(t *Table) {
	m.Tables = append(m.Tables, t)
}

// RemoveTable removes the named table and every relationship it
// participates in. The removed relationships are returned so a
// delete-then-recreate update can re-attach the survivors.
func (m *Model) RemoveTable(name string) []*Relationship {
	idx := -1
	for i, t := range m.Tables {
		if t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	m.Tables = append(m.Tables[:idx], m.Tables[idx+1:]...)

	var removed []*Relationship
	var kept []*Relationship
	for _, r := range m.Relationships {
		if r.Involves(name) {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	m.Relationships = kept
	return removed
}

// AddRelationship adds a copy of r to the graph. A relationship connecting
// the same ordered column pair as an existing one is skipped. A name
// collision with a distinct relationship is resolved by assigning a fresh
// generated identity; the prior name is kept on OriginalName for
// diagnostics. Reports whether the relationship was added.
func (m *Model) AddRelationship(r *Relationship) bool {
	for _, existing := range m.Relationships {
		if existing.SameEndpoints(r) {
			return false
		}
	}
	cp := r.Clone()
	if m.Relationship(cp.Name) != nil {
		cp.OriginalName = cp.Name
		cp.Name = uuid.NewString()
	}
	m.Relationships = append(m.Relationships, cp)
	return true
}

// RemoveRelationship removes the relationship with the given identity name.
func (m *Model) RemoveRelationship(name string) {
	for i, r := range m.Relationships {
		if r.Name == name {
			m.Relationships = append(m.Relationships[:i], m.Relationships[i+1:]...)
			return
		}
	}
}

// RemovePerspective removes the named perspective.
func (m *Model) RemovePerspective(name string) {
	for i, p := range m.Perspectives {
		if p.Name == name {
			m.Perspectives = append(m.Perspectives[:i], m.Perspectives[i+1:]...)
			return
		}
	}
}

// RemoveCulture removes the named culture.
func (m *Model) RemoveCulture(name string) {
	for i, c := range m.Cultures {
		if c.Name == name {
			m.Cultures = append(m.Cultures[:i], m.Cultures[i+1:]...)
			return
		}
	}
}

// RemoveRole removes the named role.
func (m *Model) RemoveRole(name string) {
	for i, r := range m.Roles {
		if r.Name == name {
			m.Roles = append(m.Roles[:i], m.Roles[i+1:]...)
			return
		}
	}
}

// RemoveConnection removes the named connection.
func (m *Model) RemoveConnection(name string) {
	for i, c := range m.Connections {
		if c.Name == name {
			m.Connections = append(m.Connections[:i], m.Connections[i+1:]...)
			return
		}
	}
}

// ResolveTranslation reports whether the translation's referent exists in
// this graph, using the per-kind name lookup.
func (m *Model) ResolveTranslation(t *Translation) bool {
	switch t.Kind {
	case KindModel:
		return true
	case KindTable:
		return m.Table(t.ObjectName) != nil
	case KindColumn:
		return m.Column(t.TableName, t.ObjectName) != nil
	case KindMeasure:
		return m.Measure(t.TableName, t.ObjectName) != nil
	case KindHierarchy:
		return m.Hierarchy(t.TableName, t.ObjectName) != nil
	case KindLevel:
		return m.Level(t.TableName, t.HierarchyName, t.ObjectName) != nil
	case KindPerspective:
		return m.Perspective(t.ObjectName) != nil
	case KindRole:
		return m.Role(t.ObjectName) != nil
	default:
		return false
	}
}

// FilteringRelationships returns the active relationships that propagate
// filters outward from the named table.
func (m *Model) FilteringRelationships(tableName string) []*Relationship {
	var out []*Relationship
	for _, r := range m.Relationships {
		if r.FiltersFrom(tableName) {
			out = append(out, r)
		}
	}
	return out
}
