package leaderboarddomain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a displayed leaderboard value: text for durations, a number for counts.
type Value struct {
	text   string
	number float64
	isText bool
}

func TextValue(s string) Value { return Value{text: s, isText: true} }

func NumberValue(n float64) Value { return Value{number: n} }

// IsText reports whether the value is a preformatted string.
func (v Value) IsText() bool { return v.isText }

// Number returns the numeric value, or 0 for text values.
func (v Value) Number() float64 { return v.number }

func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.number, 'f', -1, 64)
}

// Equal lets go-cmp compare values without reaching into unexported fields.
func (v Value) Equal(o Value) bool {
	return v.isText == o.isText && v.text == o.text && v.number == o.number
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	return []byte(strconv.FormatFloat(v.number, 'f', -1, 64)), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("leaderboard value must be a string or number: %w", err)
	}
	*v = NumberValue(n)
	return nil
}
