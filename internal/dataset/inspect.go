package dataset

import (
	"context"

	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
)

// Inspection is the header resolution of an input, computed without
// validating or coercing any rows.
type Inspection struct {
	Name       string
	Format     types.Format
	Sheet      string
	Rows       int
	Resolution *schema.Resolution
}

// Inspect parses an input and resolves its headers. Unlike Load it succeeds
// when required columns are missing, so the result can explain why a load
// would fail.
func (l *Loader) Inspect(ctx context.Context, in Input) (*Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := l.parse(in)
	if err != nil {
		return nil, err
	}

	return &Inspection{
		Name:       in.Name,
		Format:     table.Format,
		Sheet:      table.Sheet,
		Rows:       len(table.Rows),
		Resolution: schema.Resolve(table.Headers, l.opts.Match),
	}, nil
}

// Loadable reports whether Load would find every required column.
func (i *Inspection) Loadable() bool {
	return i.Resolution.Has(schema.Amount)
}
