package owltime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNominalDuration reports an xsd:duration with year or month parts,
// which have no fixed length.
var ErrNominalDuration = errors.New("duration has year or month parts")

// FormatDuration renders d as an xsd:duration lexical form such as
// P1DT2H30M or -PT0.5S.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteByte('P')
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if d == 0 {
		return b.String()
	}
	b.WriteByte('T')
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	if h > 0 {
		fmt.Fprintf(&b, "%dH", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if d > 0 {
		b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
		b.WriteByte('S')
	}
	return b.String()
}

// ParseDuration reads an xsd:duration lexical form. Weeks, days, hours,
// minutes and seconds are supported; years and months return
// ErrNominalDuration unless they are zero.
func ParseDuration(s string) (time.Duration, error) {
	in := strings.TrimSpace(s)
	neg := strings.HasPrefix(in, "-")
	in = strings.TrimPrefix(in, "-")
	if !strings.HasPrefix(in, "P") || len(in) < 2 {
		return 0, fmt.Errorf("parse duration %q: missing P designator", s)
	}
	in = in[1:]
	var total time.Duration
	inTime := false
	parts := 0
	for len(in) > 0 {
		if in[0] == 'T' {
			if inTime || len(in) == 1 {
				return 0, fmt.Errorf("parse duration %q: misplaced T", s)
			}
			inTime = true
			in = in[1:]
			continue
		}
		i := strings.IndexAny(in, "YMWDHS")
		if i <= 0 {
			return 0, fmt.Errorf("parse duration %q: malformed component", s)
		}
		num, unit := in[:i], in[i]
		in = in[i+1:]
		v, err := strconv.ParseFloat(num, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("parse duration %q: bad number %q", s, num)
		}
		if strings.Contains(num, ".") && unit != 'S' {
			return 0, fmt.Errorf("parse duration %q: only seconds may be fractional", s)
		}
		parts++
		var scale time.Duration
		switch {
		case !inTime && (unit == 'Y' || unit == 'M'):
			if v != 0 {
				return 0, fmt.Errorf("parse duration %q: %w", s, ErrNominalDuration)
			}
			continue
		case !inTime && unit == 'W':
			scale = 7 * 24 * time.Hour
		case !inTime && unit == 'D':
			scale = 24 * time.Hour
		case inTime && unit == 'H':
			scale = time.Hour
		case inTime && unit == 'M':
			scale = time.Minute
		case inTime && unit == 'S':
			scale = time.Second
		default:
			return 0, fmt.Errorf("parse duration %q: unexpected %c", s, unit)
		}
		total += time.Duration(v * float64(scale))
	}
	if parts == 0 {
		return 0, fmt.Errorf("parse duration %q: no components", s)
	}
	if neg {
		total = -total
	}
	return total, nil
}
