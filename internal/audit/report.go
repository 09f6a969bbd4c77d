package audit

// Severity classifies a finding. Issues are release blockers, warnings are
// advisory, passes record satisfied checks so the report shows coverage.
type Severity string

const (
	SeverityPass    Severity = "pass"
	SeverityWarning Severity = "warning"
	SeverityIssue   Severity = "issue"
)

// Finding is a single check outcome. Findings are immutable once produced;
// the evaluator creates them and renderers only read them.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
}

// Report aggregates the findings of one audit run. Counts are derived from
// Findings and nothing else, so TotalChecks == Passed+Warnings+Issues holds
// by construction.
type Report struct {
	TotalChecks int
	Passed      int
	Warnings    int
	Issues      int
	Findings    []Finding
}

// Summarize tallies findings into a report, preserving evaluation order.
func Summarize(findings []Finding) Report {
	r := Report{Findings: findings}
	for _, f := range findings {
		switch f.Severity {
		case SeverityPass:
			r.Passed++
		case SeverityWarning:
			r.Warnings++
		case SeverityIssue:
			r.Issues++
		}
	}
	r.TotalChecks = r.Passed + r.Warnings + r.Issues
	return r
}

// HasIssues reports whether any issue-severity finding exists. Warnings do
// not count; they never affect exit status.
func (r Report) HasIssues() bool {
	return r.Issues > 0
}

// BySeverity returns the findings matching sev in evaluation order.
func (r Report) BySeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
