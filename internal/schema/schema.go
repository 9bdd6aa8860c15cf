// =============================================================================
// Procurement Analytics - Canonical Schema
// =============================================================================
//
// This package defines the canonical procurement schema and the column
// normalizer that maps vendor-supplied header names onto it.
//
// RESOLUTION RULES:
//   1. Raw headers are whitespace-trimmed before any comparison.
//   2. If a column already carries the canonical name, no rename is added.
//   3. Otherwise the field's synonyms are scanned in order; the first one
//      present is renamed. At most one column is consumed per field.
//   4. Fields with no match stay absent. The dataset loader decides whether
//      that is fatal.
//
// The synonym table is a flat, ordered decision table. Add new spellings to
// the table (or to extra_synonyms in config.yaml), never as extra branches.
//
// =============================================================================

package schema

import (
	"strings"
)

// =============================================================================
// CANONICAL FIELDS
// =============================================================================

// Field identifies one canonical procurement field.
type Field string

const (
	Amount         Field = "Amount"
	POValue        Field = "POValue"
	Percent        Field = "Percent"
	Date           Field = "Date"
	VendorName     Field = "VendorName"
	ProjectManager Field = "ProjectManager"
	PONumber       Field = "PONumber"
	PRNumber       Field = "PRNumber"
)

// Kind is the semantic type of a canonical field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

// Definition describes a canonical field: the column name the normalized
// dataset uses for it and the raw headers accepted in its place.
type Definition struct {
	Field Field

	// Column is the canonical column header in the normalized dataset.
	Column string

	Kind Kind

	// Synonyms are accepted raw header names, in priority order.
	Synonyms []string
}

// Canonical is the fixed schema. Order matters only for reporting; each field
// is resolved independently.
//
// Entries with a trailing space mirror spellings seen in source exports. Raw
// headers are trimmed before comparison, so they never match on their own.
var Canonical = []Definition{
	{
		Field:    Amount,
		Column:   "App_Amount",
		Kind:     KindNumber,
		Synonyms: []string{"Total_Paid", "Payment Amount", "Total Paid"},
	},
	{
		Field:    POValue,
		Column:   "App_PO_Value",
		Kind:     KindNumber,
		Synonyms: []string{"Total_PO_Value", "Total PO Value", "Total PO Value "},
	},
	{
		Field:    Percent,
		Column:   "App_Percent",
		Kind:     KindNumber,
		Synonyms: []string{"Actual_Payment_%", "Payment %", "Actual_Payment_% "},
	},
	{
		Field:  Date,
		Column: "App_Date",
		Kind:   KindDate,
		Synonyms: []string{
			"PO_Date", "PO DATE", "PO_Date ",
			"Invoice Date", "Invoice Date ", "PR DATE",
		},
	},
	{
		Field:    VendorName,
		Column:   "Vendor_Name",
		Kind:     KindText,
		Synonyms: []string{"Vendor", "VENDOR"},
	},
	{
		Field:    ProjectManager,
		Column:   "Project_Manager",
		Kind:     KindText,
		Synonyms: []string{"Project Manager", "Project Manager "},
	},
	{Field: PONumber, Column: "PO No", Kind: KindText},
	{Field: PRNumber, Column: "PR_No", Kind: KindText},
}

// Lookup returns the definition of a canonical field.
func Lookup(f Field) (Definition, bool) {
	for _, def := range Canonical {
		if def.Field == f {
			return def, true
		}
	}
	return Definition{}, false
}

// ColumnFor returns the canonical column name of a field, or the field name
// itself if the field is unknown.
func ColumnFor(f Field) string {
	if def, ok := Lookup(f); ok {
		return def.Column
	}
	return string(f)
}

// ParseField maps a user-facing name ("vendor", "Amount", "App_PO_Value") to a
// canonical field.
func ParseField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, def := range Canonical {
		if strings.EqualFold(name, string(def.Field)) || strings.EqualFold(name, def.Column) {
			return def.Field, true
		}
	}
	switch strings.ToLower(name) {
	case "vendor":
		return VendorName, true
	case "pm", "project_manager", "manager":
		return ProjectManager, true
	case "po", "po_value":
		return POValue, true
	}
	return "", false
}

// =============================================================================
// MATCHING OPTIONS
// =============================================================================

// MatchMode controls how raw headers are compared with canonical names and
// synonyms.
type MatchMode string

const (
	// MatchStrict compares trimmed headers literally (case-sensitive).
	MatchStrict MatchMode = "strict"

	// MatchCaseInsensitive compares trimmed headers ignoring case.
	MatchCaseInsensitive MatchMode = "case_insensitive"
)

// Options tunes header resolution.
type Options struct {
	Mode MatchMode

	// ExtraSynonyms are consulted after the built-in synonyms of a field.
	ExtraSynonyms map[Field][]string
}

func (o Options) equal(a, b string) bool {
	if o.Mode == MatchCaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}
