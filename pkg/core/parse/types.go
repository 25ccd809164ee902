package parse

// Record maps a column header to the cell value for one table row. Every
// record of the same table carries an identical key set; rows whose cell
// count disagreed with the header were dropped at extraction time.
type Record map[string]string

// Table is one extracted pipe table. Columns preserves the header order,
// which a map of records cannot.
type Table struct {
	Columns []string
	Rows    []Record
}

// Section is one catalog entry after parse-back: prose with all table
// markup stripped, the tables found under its header (nil when none), and
// whether the splitter had to synthesize placeholder prose because the
// header was never detected.
type Section struct {
	Name        string
	Prose       string
	Tables      []Table
	Placeholder bool
}

// Report is the full parse result. Every catalog entry is present in
// Sections; Order repeats the catalog order so callers can iterate
// deterministically.
type Report struct {
	Order    []string
	Sections map[string]*Section
}

// Degraded lists the sections that fell back to placeholder prose.
func (r *Report) Degraded() []string {
	var names []string
	for _, name := range r.Order {
		if s, ok := r.Sections[name]; ok && s.Placeholder {
			names = append(names, name)
		}
	}
	return names
}
