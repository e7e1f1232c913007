package session

import (
	"encoding/json"
	"errors"
)

type pair struct {
	K string `json:"k"`
	V any    `json:"v"`
}

// encodeData serializes data as an ordered list of pairs.
func encodeData(data *Data) ([]byte, error) {
	pairs := make([]pair, 0, data.Count())
	for k, v := range data.All() {
		pairs = append(pairs, pair{K: k, V: v})
	}
	return json.Marshal(pairs)
}

// decodeData restores data written by encodeData. Values come back as
// JSON types: numbers are float64, objects map[string]any.
func decodeData(b []byte) (*Data, error) {
	var pairs []pair
	if err := json.Unmarshal(b, &pairs); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	data := NewData()
	for _, p := range pairs {
		data.Put(p.K, p.V)
	}
	return data, nil
}
