package entity

import (
	"bytes"
	"encoding/json"
)

// TypeCount is one categorical value with its occurrence count.
type TypeCount struct {
	Type  string
	Count int
}

// Distribution maps categorical values to occurrence counts, ordered by
// descending count with ties broken by first appearance in the dataset.
type Distribution []TypeCount

// Total returns the sum of all counts.
func (d Distribution) Total() int {
	total := 0
	for _, tc := range d {
		total += tc.Count
	}
	return total
}

// Count returns the count for the given value, 0 when absent.
func (d Distribution) Count(value string) int {
	for _, tc := range d {
		if tc.Type == value {
			return tc.Count
		}
	}
	return 0
}

// MarshalJSON renders the distribution as a JSON object whose keys keep the
// distribution order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, tc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tc.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(tc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
