package export

import "github.com/c360studio/semowl/owl"

// Profile determines which axioms of an ontology are exported.
type Profile string

const (
	// ProfileAsserted exports only the axioms written by the author.
	ProfileAsserted Profile = "asserted"

	// ProfileInferred exports only the reasoner's inferences.
	ProfileInferred Profile = "inferred"

	// ProfileAll exports every axiom and rule.
	ProfileAll Profile = "all"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeAsserted keeps axioms not flagged as inferred.
	IncludeAsserted bool

	// IncludeInferred keeps axioms flagged as inferred.
	IncludeInferred bool

	// IncludeRules keeps the ontology's SWRL rules.
	IncludeRules bool

	// IncludeDeclarations keeps declarations even when asserted axioms
	// are dropped, so inferred output stays well typed.
	IncludeDeclarations bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileAsserted: {
		Name:                ProfileAsserted,
		Description:         "Asserted axioms and rules",
		IncludeAsserted:     true,
		IncludeInferred:     false,
		IncludeRules:        true,
		IncludeDeclarations: true,
	},
	ProfileInferred: {
		Name:                ProfileInferred,
		Description:         "Inferred axioms with the declarations they need",
		IncludeAsserted:     false,
		IncludeInferred:     true,
		IncludeRules:        false,
		IncludeDeclarations: true,
	},
	ProfileAll: {
		Name:                ProfileAll,
		Description:         "Every axiom and rule",
		IncludeAsserted:     true,
		IncludeInferred:     true,
		IncludeRules:        true,
		IncludeDeclarations: true,
	},
}

// GetProfileConfig returns the configuration for a profile, falling back
// to ProfileAll.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileAll]
}

// Select returns a copy of o holding the axioms and rules the profile
// keeps. Ontology metadata is always copied.
func Select(o *owl.Ontology, profile Profile) *owl.Ontology {
	cfg := GetProfileConfig(profile)
	out := owl.NewOntology(o.IRI)
	out.VersionIRI = o.VersionIRI
	out.Prefixes = append([]owl.Prefix(nil), o.Prefixes...)
	out.Imports = append([]string(nil), o.Imports...)
	out.Annotations = append([]owl.Annotation(nil), o.Annotations...)
	for _, ax := range o.Axioms() {
		switch {
		case ax.Kind() == owl.KindDeclaration && cfg.IncludeDeclarations:
		case ax.IsInferred() && cfg.IncludeInferred:
		case !ax.IsInferred() && cfg.IncludeAsserted:
		default:
			continue
		}
		out.AddAxiom(ax)
	}
	if cfg.IncludeRules {
		for _, r := range o.Rules() {
			out.AddRule(r)
		}
	}
	return out
}
