package calendar

// eventItem is a single reservation as the upstream calendar service
// returns it. Start and End are RFC3339 in the calendar's own zone.
type eventItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type listEventsResponse struct {
	Events []eventItem `json:"events"`
}

type insertEventRequest struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type insertEventResponse struct {
	ID string `json:"id"`
}
