package types

// Warning represents a non-fatal extraction problem. The run continues; the
// corresponding placeholders simply never make it into the output map.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// FillReport represents the result of one template-fill run.
type FillReport struct {
	// Filled is the template text with all resolved placeholders substituted.
	Filled string `json:"filled"`
	// Placeholders lists the unique placeholder-shaped tokens found in the
	// template, for reporting only.
	Placeholders []string `json:"placeholders"`
	// Counts maps each substituted placeholder to the number of occurrences
	// replaced. Placeholders resolved but absent from the template are omitted.
	Counts map[string]int `json:"counts"`
	// Warnings lists degraded extraction paths in the order they occurred.
	Warnings []Warning `json:"warnings,omitempty"`
}

// TotalReplacements returns the sum of all occurrence counts.
func (r *FillReport) TotalReplacements() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}
