package support

// FAQ is one entry of the driver help page.
type FAQ struct {
	Question string
	Answer   string
}

// DriverFAQs returns the entries shown on the driver support page.
func DriverFAQs() []FAQ {
	return []FAQ{
		{
			Question: "How do I become a driver?",
			Answer:   "You can apply to become a driver through our registration portal. Fill out the form, submit the necessary documents, and wait for approval.",
		},
		{
			Question: "How do I track my earnings?",
			Answer:   "You can view your earnings through the driver dashboard. All completed trips and their respective payouts will be shown there.",
		},
		{
			Question: "How do I get assistance with technical issues?",
			Answer:   "If you're facing technical issues, please use the \"Contact Support\" form below or check out the Help Center for troubleshooting guides.",
		},
	}
}
