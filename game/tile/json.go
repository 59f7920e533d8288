package tile

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON rejects anything but a single printable letter, upper-casing
// it in the process.
func (l *Letter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if Letter(s) == Blank {
		*l = Blank
		return nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return fmt.Errorf("invalid letter: %q", s)
	}
	ch, err := newLetter(runes[0])
	if err != nil {
		return err
	}
	*l = ch
	return nil
}
