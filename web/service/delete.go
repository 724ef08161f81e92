package service

import "net/http"

// DeleteState is the position of a delete request in the confirmation flow.
type DeleteState int

const (
	DeletePending DeleteState = iota
	DeleteConfirmed
	DeleteCancelled
)

func (s DeleteState) String() string {
	switch s {
	case DeletePending:
		return "pending"
	case DeleteConfirmed:
		return "confirmed"
	case DeleteCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ResolveDeletion maps a request onto the flow: anything but POST awaits confirmation,
// a POST with the affirmative answer confirms and any other POST cancels.
func ResolveDeletion(method string, affirmative bool) DeleteState {
	if method != http.MethodPost {
		return DeletePending
	}
	if affirmative {
		return DeleteConfirmed
	}
	return DeleteCancelled
}
