// Package matcher classifies extracted substance names against the catalog.
//
// The central property is idempotent attribution: a catalog record is claimed
// by at most one entry in the known list no matter how many surface variants
// of its name appear in the candidates, and no candidate ends up in both
// output lists.
package matcher

import "github.com/seguimed/sustancias-api/catalog"

// KnownSubstance is one matched catalog record, shaped for the response
// payload.
type KnownSubstance struct {
	Nombre      string `json:"nombre"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion"`
}

// Result partitions the candidates of one request. Both lists keep
// first-occurrence order and contain no duplicates.
type Result struct {
	Known   []KnownSubstance
	Unknown []string
}

// Classify partitions candidate names into known and unknown substances.
//
// Matching policy: a candidate matches a record only when its normalized form
// is exactly one of the record's normalized names (canonical name or alias).
// Substring containment is deliberately not used, short names like "ácido"
// would otherwise claim half the catalog.
//
// Per candidate, in input order:
//   - blank candidates are discarded;
//   - a candidate matching an unclaimed record claims it, appending one
//     known entry;
//   - a candidate matching an already claimed record is absorbed silently,
//     it goes to neither list;
//   - an unmatched candidate is appended to unknown with its original
//     casing, once.
//
// A nil catalog behaves like an empty one: every candidate is unknown.
func Classify(candidates []string, cat *catalog.Catalog) Result {
	result := Result{
		Known:   []KnownSubstance{},
		Unknown: []string{},
	}

	claimed := make(map[string]bool)
	unknownSeen := make(map[string]bool)

	for _, raw := range candidates {
		normalized := catalog.Normalize(raw)
		if normalized == "" {
			continue
		}

		if cat != nil {
			if rec, ok := cat.Lookup(normalized); ok {
				if !claimed[rec.Nombre] {
					claimed[rec.Nombre] = true
					result.Known = append(result.Known, KnownSubstance{
						Nombre:      rec.Nombre,
						Categoria:   rec.Categoria,
						Descripcion: rec.Descripcion,
					})
				}
				continue
			}
		}

		if !unknownSeen[raw] {
			unknownSeen[raw] = true
			result.Unknown = append(result.Unknown, raw)
		}
	}

	return result
}
