package window

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("analysis and synthesis windows must have same length")

func validateHop(size, hop int) error {
	if hop <= 0 || hop > size {
		return fmt.Errorf("window hop must be in [1,%d]: %d", size, hop)
	}
	return nil
}
