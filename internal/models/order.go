package models

import (
	"encoding/json"
	"time"
)

// DeliveryRequest is a customer broadcast awaiting a driver. The backend
// is inconsistent about field names ("orderId" vs "_id", "to" vs
// "toLocation"), so unmarshalling normalises both forms onto one shape.
type DeliveryRequest struct {
	OrderID      string   `json:"orderId"`
	CustomerID   string   `json:"customerId"`
	CustomerName string   `json:"customerName"`
	To           Location `json:"to"`
	BidAmount    string   `json:"bidAmount"`
	Status       string   `json:"status"`
}

func (r *DeliveryRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		OrderID      string    `json:"orderId"`
		MongoID      string    `json:"_id"`
		CustomerID   string    `json:"customerId"`
		CustomerName string    `json:"customerName"`
		To           *Location `json:"to"`
		ToLocation   *Location `json:"toLocation"`
		BidAmount    string    `json:"bidAmount"`
		Status       string    `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.OrderID = raw.OrderID
	if r.OrderID == "" {
		r.OrderID = raw.MongoID
	}
	r.CustomerID = raw.CustomerID
	r.CustomerName = raw.CustomerName
	switch {
	case raw.To != nil:
		r.To = *raw.To
	case raw.ToLocation != nil:
		r.To = *raw.ToLocation
	}
	r.BidAmount = raw.BidAmount
	r.Status = raw.Status
	if r.Status == "" {
		r.Status = OrderStatusPending
	}
	return nil
}

// Customer identifies the requesting account on an order. The backend
// sometimes embeds the joined record and sometimes just the id string.
type Customer struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		c.ID = id
		c.FirstName = ""
		c.LastName = ""
		return nil
	}
	type customer Customer
	var full customer
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*c = Customer(full)
	return nil
}

// Order is a delivery request that progressed past broadcast. Status moves
// one way: pending -> inprogress -> completed or cancelled, with
// cancellation also reachable straight from pending.
type Order struct {
	ID        string    `json:"_id"`
	Customer  Customer  `json:"customerId"`
	From      Location  `json:"from"`
	To        Location  `json:"to"`
	Bid       float64   `json:"bid"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanTransition reports whether the client may request the given target
// status for this order. The backend confirms every transition; this only
// guards against requesting an impossible one.
func (o *Order) CanTransition(target string) bool {
	switch target {
	case OrderStatusCompleted:
		return !IsTerminalStatus(o.Status)
	case OrderStatusCancelled:
		return o.Status != OrderStatusCancelled && o.Status != OrderStatusCompleted
	default:
		return false
	}
}
