package transfer

import (
	"fmt"
	"time"
)

// NumberPrefix starts every order number.
const NumberPrefix = "TO"

// FormatNumber renders the order number for the seq-th order created on the
// UTC day of at, as TO-YYYYMMDD-NNNN.
func FormatNumber(at time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", NumberPrefix, NumberDay(at), seq)
}

// NumberDay is the date part of order numbers issued on the UTC day of at.
func NumberDay(at time.Time) string {
	return at.UTC().Format("20060102")
}
