package model

// Report holds the scan outcome for a single source file.
type Report struct {
	Source   Source
	Findings []Finding
	// Err is set when the file could not be loaded.
	Err error
	// Rules fingerprints the rule table the findings were produced with.
	Rules string
}

// Total counts findings across reports.
func Total(reports []Report) int {
	total := 0
	for _, r := range reports {
		total += len(r.Findings)
	}

	return total
}
