package dataset_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Inspect(t *testing.T) {
	loader := newLoader(dataset.Options{})

	info, err := loader.Inspect(context.Background(), dataset.Input{Name: "tracker.csv", Data: []byte(trackerCSV)})
	require.NoError(t, err)

	assert.Equal(t, types.FormatDelimited, info.Format)
	assert.Equal(t, 3, info.Rows)
	assert.True(t, info.Loadable())
	assert.Equal(t, "Total Paid", info.Resolution.SourceHeader(schema.Amount))
	assert.Empty(t, info.Resolution.Missing())
}

func TestLoader_InspectMissingAmount(t *testing.T) {
	loader := newLoader(dataset.Options{})
	in := dataset.Input{Name: "bad.csv", Data: []byte("Vendor,Total\nAcme,1\n")}

	info, err := loader.Inspect(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, info.Loadable())
	assert.Contains(t, info.Resolution.Missing(), schema.Amount)

	_, err = loader.Load(context.Background(), in)
	assert.True(t, errors.Is(err, dataset.ErrMissingRequiredColumn))
}

func TestLoader_InspectUnreadable(t *testing.T) {
	loader := newLoader(dataset.Options{})

	_, err := loader.Inspect(context.Background(), dataset.Input{Name: "notes.pdf", Data: []byte("x")})

	var perr *dataset.ParseError
	assert.ErrorAs(t, err, &perr)
}
