package export

import (
	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
)

func isCurrency(f schema.Field) bool {
	return f == schema.Amount || f == schema.POValue
}

// cellValue returns a typed workbook value: numbers for numeric fields, text
// for everything else.
func cellValue(rec *dataset.Record, column string) any {
	f, ok := dataset.FieldForColumn(column)
	if !ok {
		return rec.Fields[column]
	}
	if def, _ := schema.Lookup(f); def.Kind == schema.KindNumber {
		return rec.Number(f)
	}
	return rec.Text(f)
}
