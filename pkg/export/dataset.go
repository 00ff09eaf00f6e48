package export

// Dataset defines tabular export content. Summary lines are rendered after the
// table as label/value pairs.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
	Summary []SummaryLine
}

// SummaryLine is a labelled value printed below the table.
type SummaryLine struct {
	Label string
	Value string
}
