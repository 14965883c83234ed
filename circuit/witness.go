package circuit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/exp/maps"
)

// Witness is a total mapping from wire label to Scalar: Unused and any
// label absent from the map both reduce to zero.
type Witness map[WireLabel]fr.Element

// Get returns the witness value for label, or zero if label is Unused or
// was never assigned.
func (w Witness) Get(label WireLabel) fr.Element {
	if label == Unused {
		return fr.Element{}
	}
	if v, ok := w[label]; ok {
		return v
	}
	return fr.Element{}
}

// Labels returns the assigned wire labels in no particular order; callers
// needing determinism should sort the result (see slices.Sort).
func (w Witness) Labels() []WireLabel {
	return maps.Keys(w)
}

// Clone returns a defensive copy of w.
func (w Witness) Clone() Witness {
	return maps.Clone(w)
}
