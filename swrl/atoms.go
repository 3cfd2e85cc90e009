package swrl

import (
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// AtomTable returns the bindings of a single antecedent atom.
func AtomTable(idx *owl.Index, a owl.Atom) *Table {
	args := a.Arguments()
	return project(idx, args, tuples(idx, a))
}

// tuples lists the candidate argument tuples of an atom, expanded with
// same-as so that joins see every name of an individual.
func tuples(idx *owl.Index, a owl.Atom) [][]rdf.Term {
	var out [][]rdf.Term
	switch v := a.(type) {
	case *owl.ClassAtom:
		if t, ok := owl.ArgumentTerm(v.Arg); ok {
			if !t.IsLiteral() && idx.IsMember(v.Class, t) {
				out = append(out, []rdf.Term{t})
			}
			break
		}
		for _, m := range idx.Members(v.Class) {
			out = append(out, []rdf.Term{m})
		}

	case *owl.DataRangeAtom:
		if t, ok := owl.ArgumentTerm(v.Arg); ok {
			if t.IsLiteral() && idx.DataRangeContains(v.Range, owl.LiteralFromTerm(t)) {
				out = append(out, []rdf.Term{t})
			}
			break
		}
		for _, l := range literalsInUse(idx) {
			if idx.DataRangeContains(v.Range, l) {
				out = append(out, []rdf.Term{l.Term()})
			}
		}

	case *owl.ObjectPropertyAtom:
		for _, pair := range idx.ObjectPairs(v.Property) {
			for _, s := range idx.SameAs(pair.Subject) {
				for _, o := range idx.SameAs(pair.Object) {
					out = append(out, []rdf.Term{s, o})
				}
			}
		}

	case *owl.DataPropertyAtom:
		for _, pair := range idx.DataAssertions(v.Property.IRI) {
			for _, s := range idx.SameAs(pair.Subject) {
				out = append(out, []rdf.Term{s, pair.Value.Term()})
			}
		}

	case *owl.SameIndividualAtom:
		for _, ind := range individualsOf(idx, v.Left, v.Right) {
			for _, same := range idx.SameAs(ind) {
				out = append(out, []rdf.Term{ind, same})
			}
		}

	case *owl.DifferentIndividualsAtom:
		for _, pair := range idx.DifferentPairs() {
			for _, x := range idx.SameAs(pair[0]) {
				for _, y := range idx.SameAs(pair[1]) {
					out = append(out, []rdf.Term{x, y}, []rdf.Term{y, x})
				}
			}
		}
	}
	return out
}

// individualsOf returns the individuals of the index plus any ground
// individual arguments, so that sameAs(a, a) holds for unknown names too.
func individualsOf(idx *owl.Index, args ...owl.Argument) []rdf.Term {
	out := idx.Individuals()
	for _, a := range args {
		if t, ok := owl.ArgumentTerm(a); ok && !t.IsLiteral() {
			out = append(out, t)
		}
	}
	return out
}

func literalsInUse(idx *owl.Index) []*owl.Literal {
	seen := make(map[rdf.Term]bool)
	var out []*owl.Literal
	for _, p := range idx.DataPropertiesInUse() {
		for _, pair := range idx.AssertedDataPairs(p) {
			t := pair.Value.Term()
			if !seen[t] {
				seen[t] = true
				out = append(out, pair.Value)
			}
		}
	}
	return out
}

// project turns argument tuples into a table over the atom's variables.
// Ground arguments filter tuples; a variable used twice requires equal
// values.
func project(idx *owl.Index, args []owl.Argument, tuples [][]rdf.Term) *Table {
	var columns []string
	pos := make(map[string]int)
	for _, a := range args {
		if v, ok := a.(*owl.Variable); ok {
			if _, seen := pos[v.IRI]; !seen {
				pos[v.IRI] = len(columns)
				columns = append(columns, v.IRI)
			}
		}
	}
	t := NewTable(columns...)
	for _, tuple := range tuples {
		row := make([]rdf.Term, len(columns))
		ok := true
		for i, a := range args {
			if v, isVar := a.(*owl.Variable); isVar {
				j := pos[v.IRI]
				if !row[j].IsZero() && row[j] != tuple[i] {
					ok = false
					break
				}
				row[j] = tuple[i]
				continue
			}
			g, _ := owl.ArgumentTerm(a)
			if !sameTerm(idx, g, tuple[i]) {
				ok = false
				break
			}
		}
		if ok {
			t.Add(row...)
		}
	}
	return t
}

func sameTerm(idx *owl.Index, a, b rdf.Term) bool {
	if a.IsLiteral() || b.IsLiteral() {
		return a.IsLiteral() && b.IsLiteral() && owl.LiteralFromTerm(a).SameValue(owl.LiteralFromTerm(b))
	}
	return idx.AreSame(a, b)
}
