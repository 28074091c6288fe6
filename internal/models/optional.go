package models

import "encoding/json"

// Optional wraps a patch field so that a key that is absent from the
// payload can be told apart from one explicitly set to null or to a zero
// value. UnmarshalJSON only runs for keys present in the document, which
// is what flips Set.
type Optional[T any] struct {
	Value T
	Set   bool
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
