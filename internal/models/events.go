package models

// Telemetry topics, one per flow transition the client observes.
const (
	TopicOrderPlaced     = "order_placed_events"
	TopicDriverMatched   = "driver_match_events"
	TopicRequestAccepted = "request_accept_events"
	TopicRequestDeclined = "request_decline_events"
	TopicOrderCompleted  = "order_completion_events"
	TopicOrderCancelled  = "order_cancellation_events"
	TopicRoleSwitched    = "role_switch_events"
	TopicSession         = "session_events"
)

// Every event carries a unix "timestamp" field; the file and parquet sinks
// partition on it.

type OrderPlacedEvent struct {
	Timestamp  int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	OrderID    string  `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID string  `json:"customer_id" parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	BidAmount  string  `json:"bid_amount" parquet:"name=bid_amount, type=BYTE_ARRAY, convertedtype=UTF8"`
	Lat        float64 `json:"lat" parquet:"name=lat, type=DOUBLE"`
	Lng        float64 `json:"lng" parquet:"name=lng, type=DOUBLE"`
}

type DriverMatchedEvent struct {
	Timestamp  int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	OrderID    string  `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID string  `json:"customer_id" parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	DriverLat  float64 `json:"driver_lat" parquet:"name=driver_lat, type=DOUBLE"`
	DriverLng  float64 `json:"driver_lng" parquet:"name=driver_lng, type=DOUBLE"`
}

type RequestAcceptedEvent struct {
	Timestamp int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	OrderID   string  `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	DriverID  string  `json:"driver_id" parquet:"name=driver_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Lat       float64 `json:"lat" parquet:"name=lat, type=DOUBLE"`
	Lng       float64 `json:"lng" parquet:"name=lng, type=DOUBLE"`
}

type RequestDeclinedEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	OrderID   string `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	DriverID  string `json:"driver_id" parquet:"name=driver_id, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type OrderCompletedEvent struct {
	Timestamp  int64  `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	OrderID    string `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID string `json:"customer_id" parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type OrderCancelledEvent struct {
	Timestamp  int64  `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	OrderID    string `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID string `json:"customer_id" parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	FromStatus string `json:"from_status" parquet:"name=from_status, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type RoleSwitchedEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	ProfileID string `json:"profile_id" parquet:"name=profile_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Role      string `json:"role" parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type SessionEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	Action    string `json:"action" parquet:"name=action, type=BYTE_ARRAY, convertedtype=UTF8"` // login, logout, check_failed
	Role      string `json:"role" parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8"`
}
