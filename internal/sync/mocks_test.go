package sync

import (
	"github.com/semanticbi/tabsync/internal/model"
)

type nullLogger struct{}

func (nullLogger) Verbose(_ string, _ ...interface{}) {}
func (nullLogger) Info(_ string, _ ...interface{})    {}
func (nullLogger) Error(_ string, _ ...interface{})   {}

// twoTableModel builds a graph with Customer and Sales joined by one active
// relationship, plus a provider connection the partitions reference.
func twoTableModel(name string) *model.Model {
	m := model.New(name)
	m.Connections = append(m.Connections, &model.Connection{Name: "SqlServer", ConnectionString: "Data Source=db1"})
	m.AddTable(&model.Table{
		Name: "Customer",
		Columns: []*model.Column{
			{Name: "CustomerKey", DataType: "int64"},
			{Name: "Name", DataType: "string"},
		},
		Measures: []*model.Measure{{Name: "Customer Count", Expression: "COUNTROWS(Customer)"}},
		Hierarchies: []*model.Hierarchy{{
			Name:   "Geography",
			Levels: []*model.Level{{Name: "Country", ColumnName: "Name"}},
		}},
		Partitions: []*model.Partition{{Name: "Customer-Part1", ConnectionName: "SqlServer"}},
	})
	m.AddTable(&model.Table{
		Name: "Sales",
		Columns: []*model.Column{
			{Name: "CustomerKey", DataType: "int64"},
			{Name: "Amount", DataType: "decimal"},
		},
		Measures:   []*model.Measure{{Name: "Total Sales", Expression: "SUM(Sales[Amount])"}},
		Partitions: []*model.Partition{{Name: "Sales-Part1", ConnectionName: "SqlServer"}},
	})
	m.AddRelationship(&model.Relationship{
		Name:       "rel-sales-customer",
		FromTable:  "Sales",
		FromColumn: "CustomerKey",
		ToTable:    "Customer",
		ToColumn:   "CustomerKey",
		IsActive:   true,
	})
	return m
}
