package physics

// ToFloat converts the numeric types decoders produce to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

// ToFloats converts a list of numbers.
func ToFloats(v any) ([]float64, bool) {
	switch l := v.(type) {
	case []float64:
		return l, true
	case []float32:
		out := make([]float64, len(l))
		for i, f := range l {
			out[i] = float64(f)
		}
		return out, true
	case []int:
		out := make([]float64, len(l))
		for i, n := range l {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(l))
		for i, e := range l {
			f, ok := ToFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	case Triplet:
		return l[:], true
	}
	return nil, false
}

// ToTriplet converts a 3-element number list.
func ToTriplet(v any) (Triplet, bool) {
	if t, ok := v.(Triplet); ok {
		return t, true
	}
	fs, ok := ToFloats(v)
	if !ok || len(fs) != 3 {
		return Triplet{}, false
	}
	return Triplet{fs[0], fs[1], fs[2]}, true
}

// ToTriplets converts a list of 3-element number lists.
func ToTriplets(v any) ([]Triplet, bool) {
	switch l := v.(type) {
	case []Triplet:
		return l, true
	case [][]float64:
		out := make([]Triplet, len(l))
		for i, e := range l {
			t, ok := ToTriplet(e)
			if !ok {
				return nil, false
			}
			out[i] = t
		}
		return out, true
	case []any:
		out := make([]Triplet, len(l))
		for i, e := range l {
			t, ok := ToTriplet(e)
			if !ok {
				return nil, false
			}
			out[i] = t
		}
		return out, true
	}
	return nil, false
}

// ToInts converts a list of whole numbers.
func ToInts(v any) ([]int, bool) {
	switch l := v.(type) {
	case []int:
		return l, true
	}
	fs, ok := ToFloats(v)
	if !ok {
		return nil, false
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out, true
}
