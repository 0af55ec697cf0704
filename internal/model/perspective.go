package model

// PerspectiveTable is the membership entry for one table within a
// perspective. It is created lazily, only when a child of the table is first
// referenced, so a perspective never carries empty table entries.
type PerspectiveTable struct {
	TableName   string   `json:"name"`
	Columns     []string `json:"columns,omitempty"`
	Hierarchies []string `json:"hierarchies,omitempty"`
	Measures    []string `json:"measures,omitempty"`
}

// HasColumn reports membership of the named column.
func (pt *PerspectiveTable) HasColumn(name string) bool { return containsString(pt.Columns, name) }

// HasHierarchy reports membership of the named hierarchy.
func (pt *PerspectiveTable) HasHierarchy(name string) bool {
	return containsString(pt.Hierarchies, name)
}

// HasMeasure reports membership of the named measure.
func (pt *PerspectiveTable) HasMeasure(name string) bool { return containsString(pt.Measures, name) }

// Perspective is a sparse membership set over table children.
type Perspective struct {
	Name   string              `json:"name"`
	Tables []*PerspectiveTable `json:"tables,omitempty"`
}

// Table returns the membership entry for the named table, or nil.
func (p *Perspective) Table(name string) *PerspectiveTable {
	for _, pt := range p.Tables {
		if pt.TableName == name {
			return pt
		}
	}
	return nil
}

// EnsureTable returns the membership entry for the named table, creating it
// if absent.
func (p *Perspective) EnsureTable(name string) *PerspectiveTable {
	if pt := p.Table(name); pt != nil {
		return pt
	}
	pt := &PerspectiveTable{TableName: name}
	p.Tables = append(p.Tables, pt)
	return pt
}

// AddColumn records column membership, once.
func (p *Perspective) AddColumn(tableName, columnName string) {
	pt := p.EnsureTable(tableName)
	if !pt.HasColumn(columnName) {
		pt.Columns = append(pt.Columns, columnName)
	}
}

// AddHierarchy records hierarchy membership, once.
func (p *Perspective) AddHierarchy(tableName, hierarchyName string) {
	pt := p.EnsureTable(tableName)
	if !pt.HasHierarchy(hierarchyName) {
		pt.Hierarchies = append(pt.Hierarchies, hierarchyName)
	}
}

// AddMeasure records measure membership, once.
func (p *Perspective) AddMeasure(tableName, measureName string) {
	pt := p.EnsureTable(tableName)
	if !pt.HasMeasure(measureName) {
		pt.Measures = append(pt.Measures, measureName)
	}
}

// Clone returns a deep copy of the perspective.
func (p *Perspective) Clone() *Perspective {
	cp := &Perspective{Name: p.Name}
	for _, pt := range p.Tables {
		ptc := &PerspectiveTable{
			TableName:   pt.TableName,
			Columns:     append([]string(nil), pt.Columns...),
			Hierarchies: append([]string(nil), pt.Hierarchies...),
			Measures:    append([]string(nil), pt.Measures...),
		}
		cp.Tables = append(cp.Tables, ptc)
	}
	return cp
}

func containsString(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
