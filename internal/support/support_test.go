package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paanihub/paanictl/internal/models"
)

func TestCannedReply(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{
			name:     "delivery time question",
			message:  "How long does delivery take?",
			contains: "30 to 45 minutes",
		},
		{
			name:     "order keyword",
			message:  "where is my ORDER",
			contains: "30 to 45 minutes",
		},
		{
			name:     "driver manipulation",
			message:  "I think the driver tried to manipulate my order total",
			contains: "take issues with drivers seriously",
		},
		{
			name:     "pricing",
			message:  "what price plans do you have",
			contains: "pricing plans",
		},
		{
			name:     "cancellation",
			message:  "can I cancel my delivery",
			contains: "before it is dispatched",
		},
		{
			name:     "contact details",
			message:  "how do I contact you",
			contains: "support@example.com",
		},
		{
			name:     "driver behavior",
			message:  "the driver had rude behavior",
			contains: "negative behavior",
		},
		{
			name:     "water quality",
			message:  "the water was not clean",
			contains: "water quality",
		},
		{
			name:     "unknown",
			message:  "what is the meaning of life",
			contains: "not sure about that",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, CannedReply(tt.message), tt.contains)
		})
	}
}

func TestComplaintTrackerSeededAndAdd(t *testing.T) {
	tracker := NewComplaintTracker()

	seeded := tracker.List()
	require.Len(t, seeded, 3)
	assert.Equal(t, "Missed water delivery", seeded[0].Title)
	assert.Equal(t, models.ComplaintStatusOpen, seeded[0].Status)
	assert.Equal(t, models.ComplaintStatusResolved, seeded[2].Status)

	added := tracker.Add("Leaking bottle", "The 19L bottle arrived leaking.", "")
	assert.Equal(t, models.ComplaintStatusOpen, added.Status, "empty status defaults to open")

	all := tracker.List()
	require.Len(t, all, 4)
	assert.Equal(t, "Leaking bottle", all[3].Title)
}

func TestDriverFAQs(t *testing.T) {
	faqs := DriverFAQs()
	require.Len(t, faqs, 3)
	assert.Contains(t, faqs[0].Question, "become a driver")
	for _, faq := range faqs {
		assert.NotEmpty(t, faq.Answer)
	}
}

func TestReviewBookAddClampsRating(t *testing.T) {
	book := NewReviewBook()
	require.Len(t, book.List(), 3)

	low := book.Add("ORD99901", 0, "terrible")
	assert.Equal(t, 1, low.Rating)

	high := book.Add("ORD99902", 9, "brilliant")
	assert.Equal(t, 5, high.Rating)

	all := book.List()
	assert.Equal(t, "ORD12345", all[0].OrderID)
	assert.Len(t, all, 5)
}
