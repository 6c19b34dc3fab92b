package refcell

import (
	"fmt"
	"strconv"
)

// MarshalText writes the shape as its integer code. The name is not used
// on the wire so that stored meshes stay readable by code that predates a
// rename.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(int(t))), nil
}

// UnmarshalText parses an integer code and validates membership in the
// enumeration. A code outside the valid set is rejected with a descriptive
// error rather than producing a silently broken value.
func (t *Type) UnmarshalText(text []byte) error {
	value, err := strconv.Atoi(string(text))
	if err != nil {
		return fmt.Errorf("refcell: parse cell type %q: %w", text, err)
	}
	if value < 0 || value > int(^uint8(0)) {
		return fmt.Errorf(
			"refcell: the cell type code %d just read does not correspond to one of the valid choices", value)
	}
	candidate := Type(value)
	for _, valid := range All {
		if candidate == valid {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf(
		"refcell: the cell type code %d just read does not correspond to one of the valid choices", value)
}
