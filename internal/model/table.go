package model

// Column belongs to a table. DataType and SourceColumn are opaque to the
// synchronizer; they travel with the column through delete/recreate cycles.
type Column struct {
	Name         string `json:"name"`
	DataType     string `json:"dataType,omitempty"`
	SourceColumn string `json:"sourceColumn,omitempty"`
	Expression   string `json:"expression,omitempty"`
	IsHidden     bool   `json:"isHidden,omitempty"`
}

// Measure belongs to a table. Measures are copied separately from table
// structure during synchronization so a delete/recreate of the owning table
// can re-attach them.
type Measure struct {
	Name         string `json:"name"`
	Expression   string `json:"expression,omitempty"`
	FormatString string `json:"formatString,omitempty"`
	DisplayRoot  string `json:"displayFolder,omitempty"`
}

// Level belongs to a hierarchy and references a column of the owning table
// by name.
type Level struct {
	Name       string `json:"name"`
	ColumnName string `json:"column"`
	Ordinal    int    `json:"ordinal"`
}

// Hierarchy belongs to a table and orders a set of levels.
type Hierarchy struct {
	Name   string   `json:"name"`
	Levels []*Level `json:"levels,omitempty"`
}

// Level returns the named level, or nil.
func (h *Hierarchy) Level(name string) *Level {
	for _, l := range h.Levels {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Partition belongs to a table and references a provider connection by name
// as its data source. The reference is a hard dependency: copying a table
// into a graph where the connection does not exist fails.
type Partition struct {
	Name           string `json:"name"`
	ConnectionName string `json:"dataSource,omitempty"`
	Query          string `json:"query,omitempty"`
}

// Table is the structural unit of the model graph. Collections are ordered;
// names are unique within each collection.
type Table struct {
	Name        string       `json:"name"`
	Columns     []*Column    `json:"columns,omitempty"`
	Measures    []*Measure   `json:"measures,omitempty"`
	Hierarchies []*Hierarchy `json:"hierarchies,omitempty"`
	Partitions  []*Partition `json:"partitions,omitempty"`
	StoreID     string       `json:"-"`
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Measure returns the named measure, or nil.
func (t *Table) Measure(name string) *Measure {
	for _, m := range t.Measures {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Hierarchy returns the named hierarchy, or nil.
func (t *Table) Hierarchy(name string) *Hierarchy {
	for _, h := range t.Hierarchies {
		if h.Name == name {
			return h
		}
	}
	return nil
}

// AddMeasure appends a copy of m unless a measure of the same name exists.
// Reports whether the measure was added.
func (t *Table) AddMeasure(m *Measure) bool {
	if t.Measure(m.Name) != nil {
		return false
	}
	cp := *m
	t.Measures = append(t.Measures, &cp)
	return true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cp := &Table{Name: t.Name, StoreID: t.StoreID}
	for _, c := range t.Columns {
		cc := *c
		cp.Columns = append(cp.Columns, &cc)
	}
	for _, m := range t.Measures {
		mc := *m
		cp.Measures = append(cp.Measures, &mc)
	}
	for _, h := range t.Hierarchies {
		hc := &Hierarchy{Name: h.Name}
		for _, l := range h.Levels {
			lc := *l
			hc.Levels = append(hc.Levels, &lc)
		}
		cp.Hierarchies = append(cp.Hierarchies, hc)
	}
	for _, p := range t.Partitions {
		pc := *p
		cp.Partitions = append(cp.Partitions, &pc)
	}
	return cp
}

// CloneWithoutMeasures returns a deep copy with an empty measure set.
// Used by table creation during synchronization: measures are re-attached
// in a separate step so a delete/recreate cannot duplicate them.
func (t *Table) CloneWithoutMeasures() *Table {
	cp := t.Clone()
	cp.Measures = nil
	return cp
}
