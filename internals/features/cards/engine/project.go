package engine

// Field is one projected column: a label and how to pull its value from a
// ranked row. Meta carries caller-attached attributes the aggregate itself
// does not know (circle name, supervisor, contact info).
type Field struct {
	Key   string
	Label string
	Value func(e RankEntry, meta map[string]any) any
}

// Projection flattens ranked aggregates into row-oriented records for
// display or export. It never filters and never re-sorts: whatever order
// the ranking engine established is the order the rows come out in.
type Projection struct {
	Fields []Field
}

// Header returns the column labels in projection order.
func (p Projection) Header() []string {
	h := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		h[i] = f.Label
	}
	return h
}

// Each walks the rows one at a time. Every call restarts from the first
// entry; there is no cursor state, so the same input can feed a paginated
// view and a full export. Returning false from fn stops the walk.
func (p Projection) Each(entries []RankEntry, meta func(e RankEntry) map[string]any, fn func(row []any) bool) {
	for _, e := range entries {
		var m map[string]any
		if meta != nil {
			m = meta(e)
		}
		row := make([]any, len(p.Fields))
		for i, f := range p.Fields {
			row[i] = f.Value(e, m)
		}
		if !fn(row) {
			return
		}
	}
}

// Rows materializes every row. Deterministic: same input, same output.
func (p Projection) Rows(entries []RankEntry, meta func(e RankEntry) map[string]any) [][]any {
	out := make([][]any, 0, len(entries))
	p.Each(entries, meta, func(row []any) bool {
		out = append(out, row)
		return true
	})
	return out
}
