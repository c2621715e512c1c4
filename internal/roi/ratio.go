package roi

import "encoding/json"

// Ratio is a derived ratio metric (payback, ROI percent) that may be
// undefined when its denominator is zero. An invalid Ratio marshals to JSON
// null so consumers render it as "N/A" rather than propagating NaN.
type Ratio struct {
	Value float64
	Valid bool
}

// DefinedRatio returns a valid Ratio holding v.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Valid: true}
}

// UndefinedRatio returns the undefined sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// MarshalJSON encodes a valid Ratio as its value and an invalid one as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes null as the undefined sentinel and a number as a
// valid Ratio.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Valid: true}
	return nil
}
