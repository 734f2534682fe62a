package dataset

import (
	"encoding/json"
	"iter"

	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/internal/collision"
	"github.com/arloliu/iqrfit/internal/hash"
)

// Observation is one measured (X, Y) pair identified by ID.
type Observation struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Value returns the observation's value on the given axis.
func (o Observation) Value(axis format.Axis) float64 {
	if axis == format.AxisY {
		return o.Y
	}

	return o.X
}

// Dataset is an immutable, ordered sequence of observations.
//
// The zero value is an empty dataset. Operations that remove observations
// return a new Dataset and never modify the receiver.
type Dataset struct {
	obs []Observation
}

// New creates a Dataset from a copy of obs.
func New(obs []Observation) Dataset {
	return Dataset{obs: append([]Observation(nil), obs...)}
}

// Len returns the number of observations.
func (d Dataset) Len() int {
	return len(d.obs)
}

// At returns the observation at index i.
func (d Dataset) At(i int) Observation {
	return d.obs[i]
}

// All returns an iterator over the observations in order.
func (d Dataset) All() iter.Seq2[int, Observation] {
	return func(yield func(int, Observation) bool) {
		for i, o := range d.obs {
			if !yield(i, o) {
				return
			}
		}
	}
}

// Observations returns a copy of the observations.
func (d Dataset) Observations() []Observation {
	return append([]Observation(nil), d.obs...)
}

// IDs returns the observation identifiers in order.
func (d Dataset) IDs() []string {
	ids := make([]string, len(d.obs))
	for i, o := range d.obs {
		ids[i] = o.ID
	}

	return ids
}

// DuplicateIDs returns the identifiers that occur more than once, in the
// order in which each first repeats. Observations are addressed by position,
// so duplicates are allowed; they only make id-based reports ambiguous.
func (d Dataset) DuplicateIDs() []string {
	tracker := collision.NewTracker()
	for _, o := range d.obs {
		tracker.Track(o.ID)
	}

	return tracker.Duplicates()
}

// Values returns the values of the given axis in order.
func (d Dataset) Values(axis format.Axis) []float64 {
	vals := make([]float64, len(d.obs))
	for i, o := range d.obs {
		vals[i] = o.Value(axis)
	}

	return vals
}

// Without returns a new Dataset without the observations at the given
// indices. Out-of-range and repeated indices are ignored.
func (d Dataset) Without(indices []int) Dataset {
	if len(indices) == 0 {
		return d
	}

	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		drop[i] = struct{}{}
	}

	kept := make([]Observation, 0, len(d.obs))
	for i, o := range d.obs {
		if _, ok := drop[i]; ok {
			continue
		}
		kept = append(kept, o)
	}

	return Dataset{obs: kept}
}

// Fingerprint returns an xxHash64 over the identifiers and exact values of
// the dataset, in order. Equal datasets always share a fingerprint.
func (d Dataset) Fingerprint() uint64 {
	h := hash.NewDigest()
	h.AddUint64(uint64(len(d.obs)))
	for _, o := range d.obs {
		h.AddString(o.ID)
		h.AddFloat64(o.X)
		h.AddFloat64(o.Y)
	}

	return h.Sum64()
}

// MarshalJSON encodes the dataset as an array of observations.
func (d Dataset) MarshalJSON() ([]byte, error) {
	if d.obs == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(d.obs)
}

// UnmarshalJSON decodes an array of observations.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var obs []Observation
	if err := json.Unmarshal(data, &obs); err != nil {
		return err
	}
	d.obs = obs

	return nil
}
