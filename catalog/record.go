// Package catalog provides the pregnancy-risk substance reference table:
// loading it from the CSV source, normalizing names and exposing exact
// lookups against the normalized name set.
package catalog

// Record is one authoritative substance entry.
//
// Categoria is stored exactly as found in the source table; the service does
// not enforce the A/B/C/D/X enumeration, bad source values pass through.
// Descripcion is the safety statement and may be empty, empty means the
// source had no statement, not that the field is missing.
type Record struct {
	Nombre      string
	Categoria   string
	Descripcion string

	// normalized holds the lowercased match keys for this record: the
	// canonical name plus any alias from the source. Built once at load
	// time, never mutated afterwards.
	normalized []string
}

// NewRecord builds a Record with its normalized match keys. Empty aliases are
// dropped so that an empty candidate can never match.
func NewRecord(nombre, categoria, descripcion string, aliases ...string) Record {
	r := Record{
		Nombre:      nombre,
		Categoria:   categoria,
		Descripcion: descripcion,
	}

	if n := Normalize(nombre); n != "" {
		r.normalized = append(r.normalized, n)
	}
	for _, alias := range aliases {
		if n := Normalize(alias); n != "" {
			r.normalized = append(r.normalized, n)
		}
	}

	return r
}

// NormalizedNames returns the match keys of the record.
func (r Record) NormalizedNames() []string {
	return r.normalized
}
