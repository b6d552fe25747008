package models

type Review struct {
	OrderID    string `json:"orderId"`
	Rating     int    `json:"rating"` // 1-5
	Comment    string `json:"review"`
	ReviewDate string `json:"reviewDate"` // YYYY-MM-DD
}
