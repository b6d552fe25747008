package support

import (
	"math/rand"
	"sync"

	"github.com/paanihub/paanictl/internal/models"
)

// ComplaintTracker keeps the delivery complaints raised on this device.
// It starts seeded with the complaints every new install shows.
type ComplaintTracker struct {
	mu         sync.Mutex
	complaints []models.Complaint
}

func NewComplaintTracker() *ComplaintTracker {
	return &ComplaintTracker{
		complaints: []models.Complaint{
			{
				ID:          1,
				Title:       "Missed water delivery",
				Description: "The scheduled water delivery didn't arrive at the designated time.",
				Status:      models.ComplaintStatusOpen,
			},
			{
				ID:          2,
				Title:       "Wrong delivery location",
				Description: "Water was delivered to the wrong address.",
				Status:      models.ComplaintStatusInProgress,
			},
			{
				ID:          3,
				Title:       "Contaminated water received",
				Description: "The water delivered appeared dirty and unfit for consumption.",
				Status:      models.ComplaintStatusResolved,
			},
		},
	}
}

// Add records a new complaint and returns it with an assigned id.
func (t *ComplaintTracker) Add(title, description, status string) models.Complaint {
	if status == "" {
		status = models.ComplaintStatusOpen
	}
	complaint := models.Complaint{
		ID:          rand.Intn(1000),
		Title:       title,
		Description: description,
		Status:      status,
	}
	t.mu.Lock()
	t.complaints = append(t.complaints, complaint)
	t.mu.Unlock()
	return complaint
}

// List returns all complaints in insertion order.
func (t *ComplaintTracker) List() []models.Complaint {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Complaint, len(t.complaints))
	copy(out, t.complaints)
	return out
}
