package validator

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// Severity grades an issue.
type Severity string

const (
	// SeverityWarning marks a likely modeling mistake.
	SeverityWarning Severity = "warning"
	// SeverityError marks a contradiction.
	SeverityError Severity = "error"
)

// Issue is one problem found in an ontology.
type Issue struct {
	Severity    Severity `json:"severity"`
	Rule        string   `json:"rule"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Rule, i.Description)
}

// Reporter collects the issues of one rule, dropping repeats.
type Reporter struct {
	rule   string
	seen   map[string]bool
	issues []Issue
}

// NewReporter returns a reporter for the named rule.
func NewReporter(rule string) *Reporter {
	return &Reporter{rule: rule, seen: make(map[string]bool)}
}

func (r *Reporter) add(sev Severity, suggestion, format string, args ...any) {
	desc := fmt.Sprintf(format, args...)
	key := string(sev) + desc
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.issues = append(r.issues, Issue{Severity: sev, Rule: r.rule, Description: desc, Suggestion: suggestion})
}

// Errorf records an error issue.
func (r *Reporter) Errorf(suggestion, format string, args ...any) {
	r.add(SeverityError, suggestion, format, args...)
}

// Warnf records a warning issue.
func (r *Reporter) Warnf(suggestion, format string, args ...any) {
	r.add(SeverityWarning, suggestion, format, args...)
}

// Issues returns the collected issues.
func (r *Reporter) Issues() []Issue { return r.issues }

// Report is the outcome of a validation run.
type Report struct {
	Issues   []Issue       `json:"issues"`
	Duration time.Duration `json:"duration"`
}

func severityRank(s Severity) int {
	if s == SeverityError {
		return 0
	}
	return 1
}

// sortIssues orders errors first, then by rule and description.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if ra, rb := severityRank(a.Severity), severityRank(b.Severity); ra != rb {
			return ra < rb
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Description < b.Description
	})
}

// Errors returns the number of error issues.
func (rep *Report) Errors() int { return rep.count(SeverityError) }

// Warnings returns the number of warning issues.
func (rep *Report) Warnings() int { return rep.count(SeverityWarning) }

func (rep *Report) count(sev Severity) int {
	n := 0
	for _, i := range rep.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Valid reports whether the run found no errors. Warnings do not count.
func (rep *Report) Valid() bool { return rep.Errors() == 0 }

// ByRule counts issues per rule.
func (rep *Report) ByRule() map[string]int {
	out := make(map[string]int)
	for _, i := range rep.Issues {
		out[i.Rule]++
	}
	return out
}

// WriteText renders the report as indented plain text headed by name.
func (rep *Report) WriteText(w io.Writer, name string) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	if len(rep.Issues) == 0 {
		printf("%s: valid\n", name)
	} else {
		printf("%s: %d error(s), %d warning(s)\n", name, rep.Errors(), rep.Warnings())
	}
	for _, issue := range rep.Issues {
		printf("  %s\n", issue)
		if issue.Suggestion != "" {
			printf("    suggestion: %s\n", issue.Suggestion)
		}
	}
	return err
}
