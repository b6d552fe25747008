package support

import "strings"

// replyRule answers a chat message when every keyword appears in it.
type replyRule struct {
	keywords []string
	anyOf    bool
	reply    string
}

var replyRules = []replyRule{
	{
		keywords: []string{"delivery", "order", "time"},
		anyOf:    true,
		reply:    "The expected delivery time for your order is between 30 to 45 minutes depending on traffic and location. You can track your order status in the app.",
	},
	{
		keywords: []string{"driver", "manipulate"},
		reply:    "We take issues with drivers seriously. If you suspect the driver has manipulated your order, please report it to support immediately. We will investigate and take action.",
	},
	{
		keywords: []string{"price", "plan"},
		anyOf:    true,
		reply:    "We offer competitive pricing plans based on your water needs. You can view all price plans on our website or in the app under \"Pricing\".",
	},
	{
		keywords: []string{"cancel"},
		reply:    "You can cancel your order before it is dispatched from our warehouse. Go to \"My Orders\" in the app, select your order, and choose the cancel option. For more help, contact support.",
	},
	{
		keywords: []string{"contact", "support"},
		anyOf:    true,
		reply:    "You can contact our support team via email at support@example.com or call us at +123456789. We are available 24/7.",
	},
	{
		keywords: []string{"driver", "behavior"},
		reply:    "We are sorry to hear about any negative behavior from the driver. Please report it to our support team immediately so we can take appropriate action.",
	},
	{
		keywords: []string{"water", "clean"},
		reply:    "We apologize for the issue with the water quality. Please report this to support and we will make sure to address it with the highest priority. Quality assurance is our top priority.",
	},
}

const fallbackReply = "I am not sure about that. Can you please provide more details or rephrase your question? You can ask about order delivery, pricing, or support."

// CannedReply answers a support chat message from the keyword rules.
// Rules are tried in order and the first match wins.
func CannedReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range replyRules {
		if rule.matches(lower) {
			return rule.reply
		}
	}
	return fallbackReply
}

func (r replyRule) matches(lower string) bool {
	if r.anyOf {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
	for _, kw := range r.keywords {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
