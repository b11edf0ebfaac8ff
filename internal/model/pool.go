package model

import (
	"encoding/json"
	"strconv"
)

// Token is a pool token as returned by the subgraph.
type Token struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Tick carries one initialized tick index, encoded as a string.
type Tick struct {
	TickIdx string `json:"tickIdx"`
}

// Timestamp is a unix-seconds value. The Graph serializes BigInt fields as
// quoted strings, so both quoted and bare numbers are accepted.
type Timestamp int64

// MarshalJSON encodes the timestamp the way the subgraph does.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(t), 10))
}

// UnmarshalJSON decodes a quoted or bare integer timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Timestamp(n)
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*t = Timestamp(n)
	return nil
}

// Pool is one concentrated-liquidity pool record from the subgraph.
// CreatedAtTimestamp is non-decreasing across pages when the source orders
// ascending by it; the pagination cursor relies on that.
type Pool struct {
	ID                 string    `json:"id"`
	CreatedAtTimestamp Timestamp `json:"createdAtTimestamp"`
	Token0             Token     `json:"token0"`
	Token1             Token     `json:"token1"`
	Ticks              []Tick    `json:"ticks"`
	FeeTier            string    `json:"feeTier"`
}
