package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FlexInt accepts both JSON numbers and numeric strings ("15", "15 minutes").
// Models do not always honour the requested schema.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexInt(math.Round(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexInt(leadingInt(str))
		return nil
	}

	return fmt.Errorf("invalid numeric value %s", string(data))
}

// Ptr returns the value as *int, or nil for zero.
func (f FlexInt) Ptr() *int {
	if f == 0 {
		return nil
	}
	v := int(f)
	return &v
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// FlexString accepts a JSON string or number. Dataset IDs arrive as either.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexString(num.String())
		return nil
	}

	return fmt.Errorf("invalid identifier %s", string(data))
}

// IngredientList is the relay's ingredient input: an array of strings or a single
// string. A nil list means the field was missing, null or an empty string; an
// empty array is a valid, present list.
type IngredientList []string

func (l *IngredientList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = IngredientList(items)
		return nil
	}

	var mixed []any
	if err := json.Unmarshal(data, &mixed); err == nil {
		out := make(IngredientList, 0, len(mixed))
		for _, v := range mixed {
			out = append(out, fmt.Sprint(v))
		}
		*l = out
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
			return nil
		}
		*l = IngredientList{single}
		return nil
	}

	return fmt.Errorf("ingredients must be a string or an array of strings")
}

// Join renders the list the way the prompt expects it.
func (l IngredientList) Join() string {
	return strings.Join(l, ", ")
}
