package domain

type Status string

const (
	StatusPreparing Status = "preparing"
	StatusOnTheWay  Status = "on_the_way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is assigned to every new order. There is no pending state.
const InitialStatus = StatusPreparing

var AllStatuses = []Status{StatusPreparing, StatusOnTheWay, StatusDelivered, StatusCancelled}

var transitions = map[Status][]Status{
	StatusPreparing: {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:  {StatusDelivered, StatusCancelled},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

func ParseStatus(s string) (Status, bool) {
	status := Status(s)
	_, ok := transitions[status]
	return status, ok
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order in status from may move to to.
// Setting the current status again is allowed and only refreshes updated_at.
func CanTransition(from, to Status) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	if _, ok := transitions[to]; !ok {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
