package pattern

// Transform is one element of the symmetry group of a window.
type Transform func(w Window) Window

// Canonical is a Window that is the smallest member of its orbit. Two windows are the same shape iff their
// Canonical forms are equal.
type Canonical Window

// Window returns the canonical form as a plain window.
func (c Canonical) Window() Window { return Window(c) }

func (c Canonical) Rows() []string { return Window(c).Rows() }
func (c Canonical) ASCII() string  { return Window(c).ASCII() }

// Rotate turns the window 90 degrees clockwise.
func Rotate(w Window) Window {
	const m = Size
	for i := 0; i < m/2; i++ {
		mi1 := m - i - 1
		for j := i; j < mi1; j++ {
			mj1 := m - j - 1
			tmp := w[i][j]
			// left to top
			w[i][j] = w[mj1][i]

			// bottom to left
			w[mj1][i] = w[mi1][mj1]

			// right to bottom
			w[mi1][mj1] = w[j][mi1]

			// tmp is top, top to right
			w[j][mi1] = tmp
		}
	}
	return w
}

// Flip mirrors the window left to right.
func Flip(w Window) Window {
	for i := range w {
		for j := 0; j < Size/2; j++ {
			w[i][j], w[i][Size-1-j] = w[i][Size-1-j], w[i][j]
		}
	}
	return w
}

// Invert swaps the colours of the stones.
func Invert(w Window) Window {
	for i := range w {
		for j := range w[i] {
			w[i][j] = w[i][j].Invert()
		}
	}
	return w
}

func identity(w Window) Window { return w }

func compose(fns ...Transform) Transform {
	return func(w Window) Window {
		for _, fn := range fns {
			w = fn(w)
		}
		return w
	}
}

var transforms = [16]Transform{
	identity,
	Rotate,
	compose(Rotate, Rotate),
	compose(Rotate, Rotate, Rotate),
	Flip,
	compose(Flip, Rotate),
	compose(Flip, Rotate, Rotate),
	compose(Flip, Rotate, Rotate, Rotate),

	Invert,
	compose(Rotate, Invert),
	compose(Rotate, Rotate, Invert),
	compose(Rotate, Rotate, Rotate, Invert),
	compose(Flip, Invert),
	compose(Flip, Rotate, Invert),
	compose(Flip, Rotate, Rotate, Invert),
	compose(Flip, Rotate, Rotate, Rotate, Invert),
}

// Transforms returns the 16 elements of the group, identity first. The first 8 are the symmetries of the square,
// the last 8 are the same symmetries followed by a colour swap.
func Transforms() [16]Transform { return transforms }

// Orbit returns the window under every transform, in the order of Transforms.
// Symmetric windows will have repeated members.
func Orbit(w Window) (retVal [16]Window) {
	retVal[0] = w
	for i := 1; i < 4; i++ {
		retVal[i] = Rotate(retVal[i-1])
	}
	retVal[4] = Flip(w)
	for i := 5; i < 8; i++ {
		retVal[i] = Rotate(retVal[i-1])
	}
	for i := 0; i < 8; i++ {
		retVal[i+8] = Invert(retVal[i])
	}
	return retVal
}

// Canonicalize returns the smallest member of the orbit of w.
func Canonicalize(w Window) Canonical {
	orbit := Orbit(w)
	best := orbit[0]
	for _, o := range orbit[1:] {
		if o.Less(best) {
			best = o
		}
	}
	return Canonical(best)
}
