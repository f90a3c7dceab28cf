package feed

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order is the comparator every feed is sorted with. The tie-break column
// keeps pagination deterministic when the primary column has duplicates.
type Order struct {
	Column       string
	Desc         bool
	TieBreak     string
	TieBreakDesc bool
}

// NewestFirst sorts by creation time, oldest insert first on equal timestamps
var NewestFirst = Order{
	Column:   "created_at",
	Desc:     true,
	TieBreak: "id",
}

// OldestFirst is mostly useful for archives and tests
var OldestFirst = Order{
	Column:   "created_at",
	TieBreak: "id",
}

func (o Order) apply(tx *gorm.DB) *gorm.DB {
	columns := []clause.OrderByColumn{
		{Column: clause.Column{Table: "posts", Name: o.Column}, Desc: o.Desc},
	}
	if o.TieBreak != "" {
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Table: "posts", Name: o.TieBreak},
			Desc:   o.TieBreakDesc,
		})
	}
	return tx.Clauses(clause.OrderBy{Columns: columns})
}
