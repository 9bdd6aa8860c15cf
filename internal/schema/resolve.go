package schema

import (
	"strings"
)

// Resolution is the result of mapping a raw header row onto the canonical
// schema.
type Resolution struct {
	// Raw holds the trimmed source headers, in file order.
	Raw []string

	// Headers holds the headers after renaming, in file order.
	Headers []string

	// Renames maps a raw header to the canonical column it was renamed to.
	// Headers that already carried the canonical name do not appear here.
	Renames map[string]string

	// Index maps each resolved field to its column position.
	Index map[Field]int
}

// Has reports whether the field was resolved to a column.
func (r *Resolution) Has(f Field) bool {
	_, ok := r.Index[f]
	return ok
}

// Column returns the position of a resolved field, or -1.
func (r *Resolution) Column(f Field) int {
	if idx, ok := r.Index[f]; ok {
		return idx
	}
	return -1
}

// Missing returns the canonical fields that could not be resolved, in schema
// order.
func (r *Resolution) Missing() []Field {
	var missing []Field
	for _, def := range Canonical {
		if !r.Has(def.Field) {
			missing = append(missing, def.Field)
		}
	}
	return missing
}

// SourceHeader returns the raw header a field was taken from.
func (r *Resolution) SourceHeader(f Field) string {
	if idx, ok := r.Index[f]; ok {
		return r.Raw[idx]
	}
	return ""
}

// Resolve maps raw headers onto the canonical schema.
//
// PARAMETERS:
//   - headers: The header row as read from the file.
//   - opts: Matching mode and extra synonyms.
//
// RETURNS:
//   - The resolution. It never fails; unresolved fields are simply absent.
func Resolve(headers []string, opts Options) *Resolution {
	res := &Resolution{
		Raw:     make([]string, len(headers)),
		Headers: make([]string, len(headers)),
		Renames: make(map[string]string),
		Index:   make(map[Field]int),
	}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		res.Raw[i] = h
		res.Headers[i] = h
	}

	claimed := make(map[int]bool)

	for _, def := range Canonical {
		// Already canonical: keep it and add no rename.
		if idx := findHeader(res.Raw, def.Column, claimed, opts); idx >= 0 {
			claimed[idx] = true
			res.Index[def.Field] = idx
			res.Headers[idx] = def.Column
			continue
		}

		candidates := def.Synonyms
		if extra := opts.ExtraSynonyms[def.Field]; len(extra) > 0 {
			candidates = append(append([]string{}, def.Synonyms...), extra...)
		}

		for _, synonym := range candidates {
			idx := findHeader(res.Raw, synonym, claimed, opts)
			if idx < 0 {
				continue
			}
			claimed[idx] = true
			res.Index[def.Field] = idx
			res.Headers[idx] = def.Column
			res.Renames[res.Raw[idx]] = def.Column
			break
		}
	}

	return res
}

// findHeader returns the first unclaimed column whose header equals name.
func findHeader(raw []string, name string, claimed map[int]bool, opts Options) int {
	for i, h := range raw {
		if claimed[i] {
			continue
		}
		if opts.equal(h, name) {
			return i
		}
	}
	return -1
}
