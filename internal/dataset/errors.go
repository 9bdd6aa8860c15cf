package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
)

// ErrMissingRequiredColumn matches any MissingColumnError via errors.Is.
var ErrMissingRequiredColumn = errors.New("missing required column")

// ParseError reports a whole file that could not be read as a table. No
// partial dataset is returned with it.
type ParseError struct {
	Name   string
	Format types.Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("failed to parse %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("failed to parse %s as %s: %v", e.Name, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a required canonical field that no column
// resolved to. Found lists the columns that were present, so users can fix
// their headers.
type MissingColumnError struct {
	Field  schema.Field
	Column string
	Found  []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q (%s or a known synonym) not found; found columns: [%s]",
		string(e.Field), e.Column, strings.Join(e.Found, ", "))
}

// Is makes errors.Is(err, ErrMissingRequiredColumn) succeed.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingRequiredColumn
}

// CoercionError reports an unparseable numeric cell under the strict policy.
type CoercionError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d, column %s: cannot read %q as a number", e.Row, e.Column, e.Value)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
