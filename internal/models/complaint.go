package models

// Complaint lives only in local view state; nothing round-trips to the
// backend yet.
type Complaint struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"` // Open, In Progress, Resolved
}
