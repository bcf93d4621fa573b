package order

var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether an order may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Customization advances strictly forward: pending → approved → in_progress
// → completed, one step at a time, always seller-driven.
var customizationTransitions = map[CustomizationStatus]CustomizationStatus{
	CustomizationPending:    CustomizationApproved,
	CustomizationApproved:   CustomizationInProgress,
	CustomizationInProgress: CustomizationCompleted,
}

func (s CustomizationStatus) CanTransition(next CustomizationStatus) bool {
	return customizationTransitions[s] == next && next != ""
}

var fulfillmentTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentPending:    {FulfillmentProcessing},
	FulfillmentProcessing: {FulfillmentShipped},
	FulfillmentShipped:    {FulfillmentDelivered},
	FulfillmentDelivered:  {},
}

func (s FulfillmentStatus) CanTransition(next FulfillmentStatus) bool {
	for _, allowed := range fulfillmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
