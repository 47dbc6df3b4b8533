package record

import "fmt"

// MalformedError is fatal to the load that hit it: the whole file is
// rejected rather than silently dropping the bad line.
type MalformedError struct {
	Line   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed record %q: %s", e.Line, e.Reason)
}

// DanglingRefError marks a persisted order line naming an item that is
// absent from the loaded catalog. Like MalformedError it aborts the
// whole load.
type DanglingRefError struct {
	OrderID int
	Item    string
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("order %d references unknown item %q", e.OrderID, e.Item)
}
