package ports

// EventTracker records domain events for operational visibility.
// Tracking is fire-and-forget: implementations must never block request
// handling and a failed emit must not fail the request.
type EventTracker interface {
	Track(eventName string, tags map[string]string)
}
