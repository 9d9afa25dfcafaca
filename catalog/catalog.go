package catalog

// Catalog is the immutable in-memory substance table. It is built once by
// the loader and safe for concurrent reads, there is no mutation after New.
type Catalog struct {
	records []Record
	// byName maps a normalized name to the index of the record that owns
	// it, for O(1) exact matching.
	byName map[string]int
}

// New builds a catalog from records. When two records claim the same
// normalized name (ambiguous source data) the first record wins, so lookups
// stay deterministic.
func New(records []Record) *Catalog {
	c := &Catalog{
		records: records,
		byName:  make(map[string]int, len(records)),
	}

	for i, rec := range records {
		for _, name := range rec.normalized {
			if _, taken := c.byName[name]; !taken {
				c.byName[name] = i
			}
		}
	}

	return c
}

// Lookup finds the record owning the given normalized name. The empty string
// never matches, even if the source data contained an empty alias.
func (c *Catalog) Lookup(normalized string) (Record, bool) {
	if normalized == "" {
		return Record{}, false
	}

	i, ok := c.byName[normalized]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Records returns the full record list in source order.
func (c *Catalog) Records() []Record {
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}
