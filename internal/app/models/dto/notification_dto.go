package dto

// RespondRequest answers a pending notification. Action must be ACCEPT or
// DECLINE.
type RespondRequest struct {
	Action string `json:"action"`
}

// RespondResponse reports the notification's terminal status
type RespondResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
