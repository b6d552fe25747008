package models

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "inprogress"
	OrderStatusRunning    = "running" // legacy alias the backend still emits for inprogress
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"

	RoleUser   = "user"
	RoleDriver = "driver"

	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
)

// Live channel event names, shared with the backend broadcaster.
const (
	EventNewRequest          = "newRequest"
	EventAcceptRequest       = "acceptRequest"
	EventCancelRequest       = "cancelRequest"
	EventNewRequestBroadcast = "newRequestBroadcast"
	EventOrderStatusUpdate   = "orderStatusUpdate"
)

// IsActiveStatus reports whether a request status counts as an order the
// driver is currently working on.
func IsActiveStatus(status string) bool {
	return status == OrderStatusInProgress || status == OrderStatusRunning
}

// IsTerminalStatus reports whether a status can no longer progress.
func IsTerminalStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}
