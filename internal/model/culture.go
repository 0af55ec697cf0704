package model

// ObjectKind identifies what kind of object a translation refers to.
type ObjectKind int

const (
	KindModel ObjectKind = iota
	KindTable
	KindColumn
	KindMeasure
	KindHierarchy
	KindLevel
	KindPerspective
	KindRole
)

// String returns the human-readable kind name.
func (k ObjectKind) String() string {
	switch k {
	case KindTable:
		return "Table"
	case KindColumn:
		return "Column"
	case KindMeasure:
		return "Measure"
	case KindHierarchy:
		return "Hierarchy"
	case KindLevel:
		return "Level"
	case KindPerspective:
		return "Perspective"
	case KindRole:
		return "Role"
	default:
		return "Model"
	}
}

// Translation maps one property of one referenced object to a translated
// string. The referent is addressed by names, never by stored identifiers:
// columns, measures and hierarchies by (owning table, own name), levels by
// (owning table, owning hierarchy, own name). Renaming an owner therefore
// does not strand translations that were re-resolved against the new graph.
type Translation struct {
	Kind          ObjectKind `json:"kind"`
	TableName     string     `json:"table,omitempty"`
	HierarchyName string     `json:"hierarchy,omitempty"`
	ObjectName    string     `json:"object,omitempty"`
	Property      string     `json:"property"`
	Value         string     `json:"value"`
}

// SameObjectProperty reports whether two translations address the same
// (object, property) pair, in which case one overwrites the other during
// reconciliation.
func (t *Translation) SameObjectProperty(other *Translation) bool {
	return t.Kind == other.Kind &&
		t.TableName == other.TableName &&
		t.HierarchyName == other.HierarchyName &&
		t.ObjectName == other.ObjectName &&
		t.Property == other.Property
}

// Culture is a named set of translations.
type Culture struct {
	Name         string         `json:"name"`
	Translations []*Translation `json:"translations,omitempty"`
}

// Find returns the translation addressing the same object and property as
// probe, or nil.
func (c *Culture) Find(probe *Translation) *Translation {
	for _, t := range c.Translations {
		if t.SameObjectProperty(probe) {
			return t
		}
	}
	return nil
}

// Upsert overwrites an existing same-(object,property) translation's value
// in place, or appends a copy of t.
func (c *Culture) Upsert(t *Translation) {
	if existing := c.Find(t); existing != nil {
		existing.Value = t.Value
		return
	}
	cp := *t
	c.Translations = append(c.Translations, &cp)
}

// Clone returns a deep copy of the culture.
func (c *Culture) Clone() *Culture {
	cp := &Culture{Name: c.Name}
	for _, t := range c.Translations {
		tc := *t
		cp.Translations = append(cp.Translations, &tc)
	}
	return cp
}
