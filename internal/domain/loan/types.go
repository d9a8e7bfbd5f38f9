package loan

type ReturnRequest string

const (
	ReturnRequestNone     ReturnRequest = "none"
	ReturnRequestPending  ReturnRequest = "pending"
	ReturnRequestApproved ReturnRequest = "approved"
	ReturnRequestRejected ReturnRequest = "rejected"
)

func (r ReturnRequest) String() string {
	return string(r)
}

func (r ReturnRequest) IsValid() bool {
	switch r {
	case ReturnRequestNone, ReturnRequestPending, ReturnRequestApproved, ReturnRequestRejected:
		return true
	default:
		return false
	}
}

// State is the derived lifecycle position of a loan.
type State string

const (
	StateIssued          State = "issued"
	StateReturnRequested State = "return_requested"
	StateReturned        State = "returned"
)
