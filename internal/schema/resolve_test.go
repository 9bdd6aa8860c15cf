package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		opts        Options
		wantRenames map[string]string
		wantIndex   map[Field]int
		wantMissing []Field
	}{
		{
			name:    "first synonym wins by priority order",
			headers: []string{"Payment Amount", "Total_Paid", "Total Paid"},
			wantRenames: map[string]string{
				"Total_Paid": "App_Amount",
			},
			wantIndex: map[Field]int{Amount: 1},
			wantMissing: []Field{
				POValue, Percent, Date, VendorName, ProjectManager, PONumber, PRNumber,
			},
		},
		{
			name:        "canonical column already present adds no rename",
			headers:     []string{"App_Amount", "Total_Paid"},
			wantRenames: map[string]string{},
			wantIndex:   map[Field]int{Amount: 0},
			wantMissing: []Field{
				POValue, Percent, Date, VendorName, ProjectManager, PONumber, PRNumber,
			},
		},
		{
			name: "headers are trimmed before comparison",
			headers: []string{
				" PO No ", "PR_No", "Vendor ", "Project Manager ",
				"Total PO Value ", "Total Paid", "Payment % ", " Invoice Date",
			},
			wantRenames: map[string]string{
				"Vendor":          "Vendor_Name",
				"Project Manager": "Project_Manager",
				"Total PO Value":  "App_PO_Value",
				"Total Paid":      "App_Amount",
				"Payment %":       "App_Percent",
				"Invoice Date":    "App_Date",
			},
			wantIndex: map[Field]int{
				PONumber: 0, PRNumber: 1, VendorName: 2, ProjectManager: 3,
				POValue: 4, Amount: 5, Percent: 6, Date: 7,
			},
		},
		{
			name:    "strict mode does not match other casings",
			headers: []string{"vendor", "total_paid"},
			opts:    Options{Mode: MatchStrict},
			wantRenames: map[string]string{},
			wantIndex:   map[Field]int{},
			wantMissing: []Field{
				Amount, POValue, Percent, Date, VendorName, ProjectManager, PONumber, PRNumber,
			},
		},
		{
			name:    "case insensitive mode widens matching",
			headers: []string{"vendor", "total_paid"},
			opts:    Options{Mode: MatchCaseInsensitive},
			wantRenames: map[string]string{
				"vendor":     "Vendor_Name",
				"total_paid": "App_Amount",
			},
			wantIndex: map[Field]int{VendorName: 0, Amount: 1},
			wantMissing: []Field{
				POValue, Percent, Date, ProjectManager, PONumber, PRNumber,
			},
		},
		{
			name:    "extra synonyms are consulted after built-ins",
			headers: []string{"Amount Paid (RM)", "VENDOR NAME"},
			opts: Options{ExtraSynonyms: map[Field][]string{
				Amount:     {"Amount Paid (RM)"},
				VendorName: {"VENDOR NAME"},
			}},
			wantRenames: map[string]string{
				"Amount Paid (RM)": "App_Amount",
				"VENDOR NAME":      "Vendor_Name",
			},
			wantIndex: map[Field]int{Amount: 0, VendorName: 1},
			wantMissing: []Field{
				POValue, Percent, Date, ProjectManager, PONumber, PRNumber,
			},
		},
		{
			name:    "date synonyms follow priority order",
			headers: []string{"PR DATE", "Invoice Date", "PO DATE"},
			wantRenames: map[string]string{
				"PO DATE": "App_Date",
			},
			wantIndex: map[Field]int{Date: 2},
			wantMissing: []Field{
				Amount, POValue, Percent, VendorName, ProjectManager, PONumber, PRNumber,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.headers, tt.opts)

			assert.Equal(t, tt.wantRenames, res.Renames)
			assert.Equal(t, tt.wantIndex, res.Index)
			assert.Equal(t, tt.wantMissing, res.Missing())
		})
	}
}

func TestResolve_OneColumnPerField(t *testing.T) {
	headers := []string{
		"Total_Paid", "Payment Amount", "Total Paid",
		"Total_PO_Value", "Total PO Value",
		"Actual_Payment_%", "Payment %",
		"PO_Date", "PO DATE", "Invoice Date", "PR DATE",
		"Vendor", "VENDOR",
		"Project Manager",
	}

	res := Resolve(headers, Options{})

	assert.Len(t, res.Renames, 6)
	assert.Equal(t, "App_Amount", res.Renames["Total_Paid"])
	assert.Equal(t, "App_PO_Value", res.Renames["Total_PO_Value"])
	assert.Equal(t, "App_Percent", res.Renames["Actual_Payment_%"])
	assert.Equal(t, "App_Date", res.Renames["PO_Date"])
	assert.Equal(t, "Vendor_Name", res.Renames["Vendor"])
	assert.Equal(t, "Project_Manager", res.Renames["Project Manager"])

	// Unconsumed synonyms keep their original header.
	assert.Equal(t, "Payment Amount", res.Headers[1])
	assert.Equal(t, "VENDOR", res.Headers[12])
}

func TestResolve_SourceHeader(t *testing.T) {
	res := Resolve([]string{"Vendor", "Total Paid"}, Options{})

	assert.Equal(t, "Total Paid", res.SourceHeader(Amount))
	assert.Equal(t, "", res.SourceHeader(Date))
	assert.Equal(t, 1, res.Column(Amount))
	assert.Equal(t, -1, res.Column(Date))
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
		ok   bool
	}{
		{"Amount", Amount, true},
		{"app_po_value", POValue, true},
		{"vendor", VendorName, true},
		{"pm", ProjectManager, true},
		{"Vendor_Name", VendorName, true},
		{"nope", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseField(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
