package model

// PartitionRowCounter tracks the cumulative row count reported for one
// partition during a refresh. Row counts from the store's progress stream
// are cumulative, so updates overwrite rather than add.
type PartitionRowCounter struct {
	PartitionID string
	RowCount    int64
}

// ProcessingTable is ephemeral state for one table during the processing
// phase. It exists purely for progress reporting and is discarded when the
// deployment finishes.
type ProcessingTable struct {
	Name       string
	StoreID    string
	partitions []*PartitionRowCounter
}

// NewProcessingTable creates progress state for one table.
func NewProcessingTable(name, storeID string) *ProcessingTable {
	return &ProcessingTable{Name: name, StoreID: storeID}
}

// UpdatePartition records the cumulative row count for a partition,
// creating its counter on first sight. Counters keep arrival order.
func (p *ProcessingTable) UpdatePartition(partitionID string, rowCount int64) {
	for _, c := range p.partitions {
		if c.PartitionID == partitionID {
			c.RowCount = rowCount
			return
		}
	}
	p.partitions = append(p.partitions, &PartitionRowCounter{PartitionID: partitionID, RowCount: rowCount})
}

// TotalRows returns the sum of all partition counters.
func (p *ProcessingTable) TotalRows() int64 {
	var total int64
	for _, c := range p.partitions {
		total += c.RowCount
	}
	return total
}
