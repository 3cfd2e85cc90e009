package owltime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(hours float64) time.Time {
	return t0.Add(time.Duration(hours * float64(time.Hour)))
}

func span(begin, end float64) Span {
	return Span{Begin: at(begin), End: at(end)}
}

func TestRelate(t *testing.T) {
	tests := []struct {
		a, b Span
		want Relation
	}{
		{span(0, 1), span(2, 3), Precedes},
		{span(2, 3), span(0, 1), PrecededBy},
		{span(0, 1), span(1, 2), Meets},
		{span(1, 2), span(0, 1), MetBy},
		{span(0, 2), span(1, 3), Overlaps},
		{span(1, 3), span(0, 2), OverlappedBy},
		{span(0, 1), span(0, 2), Starts},
		{span(0, 2), span(0, 1), StartedBy},
		{span(1, 2), span(0, 3), During},
		{span(0, 3), span(1, 2), Contains},
		{span(1, 2), span(0, 2), Finishes},
		{span(0, 2), span(1, 2), FinishedBy},
		{span(0, 2), span(0, 2), Equals},
		{span(1, 1), span(1, 1), Equals},
		{span(0, 0), span(0, 2), Starts},
	}
	for _, tt := range tests {
		got := Relate(tt.a, tt.b)
		assert.Equal(t, tt.want, got, "Relate(%v, %v)", tt.a, tt.b)
		assert.Equal(t, tt.want.Inverse(), Relate(tt.b, tt.a), "inverse of %s", tt.want)
	}
}

func TestRelationIRIs(t *testing.T) {
	assert.Len(t, Relations(), 13)
	assert.Equal(t, Namespace+"intervalMetBy", MetBy.IRI())
	assert.Equal(t, Namespace+"intervalBefore", Precedes.IRI())

	for _, r := range Relations() {
		got, ok := RelationFromIRI(r.IRI())
		assert.True(t, ok)
		assert.Equal(t, r, got)
		assert.Equal(t, r, r.Inverse().Inverse())
	}
	_, ok := RelationFromIRI(Namespace + "intervalIn")
	assert.False(t, ok)
	_, ok = RelationFromIRI(Before)
	assert.False(t, ok)
	assert.Equal(t, "overlapped_by", OverlappedBy.snake())
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                         "PT0S",
		90 * time.Minute:          "PT1H30M",
		26 * time.Hour:            "P1DT2H",
		48 * time.Hour:            "P2D",
		500 * time.Millisecond:    "PT0.5S",
		-time.Second:              "-PT1S",
		time.Hour + 5*time.Second: "PT1H5S",
	}
	for d, want := range tests {
		assert.Equal(t, want, FormatDuration(d), "FormatDuration(%s)", d)
		back, err := ParseDuration(want)
		require.NoError(t, err)
		assert.Equal(t, d, back, "ParseDuration(%q)", want)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "P1W", want: 7 * 24 * time.Hour},
		{in: "PT1.5S", want: 1500 * time.Millisecond},
		{in: "P0Y1D", want: 24 * time.Hour},
		{in: "-P1DT1M", want: -(24*time.Hour + time.Minute)},
		{in: "PT", wantErr: true},
		{in: "P", wantErr: true},
		{in: "1D", wantErr: true},
		{in: "P1H", wantErr: true},
		{in: "PT1D", wantErr: true},
		{in: "P1.5D", wantErr: true},
		{in: "PTxS", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDuration("P1M")
	assert.True(t, errors.Is(err, ErrNominalDuration))
}
