package geosparql

import (
	"github.com/c360studio/semowl/owl"
)

// DeclareVocabulary declares the GeoSPARQL terms used by this package.
func DeclareVocabulary(o *owl.Ontology) {
	o.AddPrefix("geo", Namespace)
	class := owl.NewClass
	prop := owl.NewObjectProperty
	for _, c := range []string{ClassSpatialObject, ClassFeature, ClassGeometry} {
		o.Declare(class(c))
	}
	for _, p := range []string{HasGeometry, HasDefaultGeometry, SfContains, SfWithin, SfIntersects} {
		o.Declare(prop(p))
	}
	for _, p := range []string{AsWKT, AsGML} {
		o.Declare(owl.NewDataProperty(p))
	}
	o.Declare(owl.NewDatatype(WKTLiteral))
	o.Declare(owl.NewDatatype(GMLLiteral))
	o.AddAxioms(
		owl.NewSubClassOf(class(ClassFeature), class(ClassSpatialObject)),
		owl.NewSubClassOf(class(ClassGeometry), class(ClassSpatialObject)),
		owl.NewDisjointClasses(class(ClassFeature), class(ClassGeometry)),
		owl.NewSubObjectPropertyOf(prop(HasDefaultGeometry), prop(HasGeometry)),
		&owl.ObjectPropertyDomain{Property: prop(HasGeometry), Class: class(ClassFeature)},
		&owl.ObjectPropertyRange{Property: prop(HasGeometry), Class: class(ClassGeometry)},
		&owl.InverseObjectProperties{First: prop(SfContains), Second: prop(SfWithin)},
		owl.NewCharacteristic(owl.KindTransitiveObjectProperty, prop(SfContains)),
		owl.NewCharacteristic(owl.KindSymmetricObjectProperty, prop(SfIntersects)),
		&owl.DataPropertyRange{Property: owl.NewDataProperty(AsWKT), Range: owl.NewDatatype(WKTLiteral)},
		&owl.DataPropertyRange{Property: owl.NewDataProperty(AsGML), Range: owl.NewDatatype(GMLLiteral)},
	)
}

func serialization(l *owl.Literal) string {
	if l.Datatype == GMLLiteral {
		return AsGML
	}
	return AsWKT
}

// AddGeometry attaches a geometry individual serialized by literal to a
// feature. The geometry becomes the default one when isDefault is set.
func AddGeometry(o *owl.Ontology, feature, geometry string, literal *owl.Literal, isDefault bool) *owl.NamedIndividual {
	f := owl.NewIndividual(feature)
	g := owl.NewIndividual(geometry)
	o.Declare(f)
	o.Declare(g)
	link := HasGeometry
	if isDefault {
		link = HasDefaultGeometry
	}
	o.AddAxioms(
		owl.NewClassAssertion(owl.NewClass(ClassGeometry), g),
		owl.NewObjectPropertyAssertion(owl.NewObjectProperty(link), f, g),
		owl.NewDataPropertyAssertion(owl.NewDataProperty(serialization(literal)), g, literal),
	)
	return g
}

// DeclareFeature declares a feature whose default geometry, named
// feature+"-geometry", is serialized by literal.
func DeclareFeature(o *owl.Ontology, feature string, literal *owl.Literal) *owl.NamedIndividual {
	f := owl.NewIndividual(feature)
	o.Declare(f)
	o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ClassFeature), f))
	AddGeometry(o, feature, feature+"-geometry", literal, true)
	return f
}
