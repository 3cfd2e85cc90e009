// Package validator checks an ontology for contradictions and modeling
// mistakes and reports them as issues.
//
// Problems found in the ontology are data, not errors: Validate returns a
// Report listing every Issue with its severity, the rule that raised it and
// a suggestion. An error is only returned when validation itself fails, for
// example because the context was canceled.
//
// Rules run in parallel against one owl.Index snapshot. Validate the
// output of the reasoner to catch contradictions that only appear after
// inference:
//
//	r, _ := reasoner.New()
//	_, _ = r.Apply(ctx, o)
//	v, _ := validator.New()
//	report, err := v.Validate(ctx, o)
//	if err == nil && !report.Valid() {
//		for _, issue := range report.Issues {
//			fmt.Println(issue)
//		}
//	}
package validator
