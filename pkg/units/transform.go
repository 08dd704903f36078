package units

// Transform maps a magnitude into its category's canonical unit. The set of
// implementations is closed: Scale, Ratio and Affine.
type Transform interface {
	Apply(v float64) float64
	isIdentity() bool
}

// Scale multiplies: v * s
type Scale float64

// Apply implements Transform
func (s Scale) Apply(v float64) float64 { return v * float64(s) }

func (s Scale) isIdentity() bool { return s == 1 }

// Ratio divides: v / d
type Ratio float64

// Apply implements Transform
func (d Ratio) Apply(v float64) float64 { return v / float64(d) }

func (d Ratio) isIdentity() bool { return d == 1 }

// Affine computes (v + Shift) * Mul / Div + Offset. Used for temperature
// scales whose zero points differ.
type Affine struct {
	Shift  float64
	Mul    float64
	Div    float64
	Offset float64
}

// Apply implements Transform
func (a Affine) Apply(v float64) float64 {
	return (v+a.Shift)*a.Mul/a.Div + a.Offset
}

func (a Affine) isIdentity() bool {
	return a.Shift == 0 && a.Mul == a.Div && a.Mul != 0 && a.Offset == 0
}
