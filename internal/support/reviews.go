package support

import (
	"sync"
	"time"

	"github.com/paanihub/paanictl/internal/models"
)

// ReviewBook keeps the ratings left for recent deliveries, seeded with
// the samples every new install shows.
type ReviewBook struct {
	mu      sync.Mutex
	reviews []models.Review
}

func NewReviewBook() *ReviewBook {
	return &ReviewBook{
		reviews: []models.Review{
			{
				OrderID:    "ORD12345",
				Rating:     5,
				Comment:    "Great service! The driver was very punctual and polite.",
				ReviewDate: "2024-11-10",
			},
			{
				OrderID:    "ORD12346",
				Rating:     4,
				Comment:    "The ride was smooth, but the driver took a longer route.",
				ReviewDate: "2024-11-08",
			},
			{
				OrderID:    "ORD12347",
				Rating:     3,
				Comment:    "The driver was good, but the car could have been cleaner.",
				ReviewDate: "2024-11-05",
			},
		},
	}
}

// Add records a review for an order. Ratings clamp to the 1..5 stars the
// page offers.
func (b *ReviewBook) Add(orderID string, rating int, comment string) models.Review {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	review := models.Review{
		OrderID:    orderID,
		Rating:     rating,
		Comment:    comment,
		ReviewDate: time.Now().Format("2006-01-02"),
	}
	b.mu.Lock()
	b.reviews = append(b.reviews, review)
	b.mu.Unlock()
	return review
}

// List returns all reviews, newest last.
func (b *ReviewBook) List() []models.Review {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Review, len(b.reviews))
	copy(out, b.reviews)
	return out
}
