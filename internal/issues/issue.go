// Where: internal/issues/issue.go
// What: Issue model and summary report.
// Why: Findings are tracked as typed records, not loose maps.
package issues

import "sort"

// Severity is one of high, medium or low.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"

	DefaultCategory = "general"
)

// Issue is a single tracked finding.
type Issue struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	FilePath       *string  `json:"file_path"`
	LineNumber     *int     `json:"line_number"`
	Recommendation *string  `json:"recommendation"`
	Category       string   `json:"category"`
}

// SeverityCounts holds per-severity totals.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Report summarizes the tracked issues.
type Report struct {
	TotalIssues    int            `json:"total_issues"`
	SeverityCounts SeverityCounts `json:"severity_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
}

func buildReport(items []Issue) Report {
	report := Report{
		TotalIssues:    len(items),
		CategoryCounts: map[string]int{},
	}
	for _, item := range items {
		switch item.Severity {
		case SeverityHigh:
			report.SeverityCounts.High++
		case SeverityMedium:
			report.SeverityCounts.Medium++
		case SeverityLow:
			report.SeverityCounts.Low++
		}
		report.CategoryCounts[item.Category]++
	}
	return report
}

// Categories returns the distinct categories in report, sorted.
func (r Report) Categories() []string {
	names := make([]string, 0, len(r.CategoryCounts))
	for name := range r.CategoryCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
