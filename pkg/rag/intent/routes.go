package intent

import "fashion-chatbot-be/internal/constant"

// Route is a semantic route: a labelled set of sample utterances with a
// minimum similarity score for the route to claim a query.
type Route struct {
	Name       string
	Utterances []string
	Threshold  float64
}

// DefaultRoutes returns the built-in route table for the shopping assistant.
func DefaultRoutes() []Route {
	return []Route{
		{
			Name:      constant.IntentChitchat,
			Threshold: 0.3,
			Utterances: []string{
				"hello",
				"hi there",
				"good morning",
				"how are you doing today?",
				"who are you?",
				"what can you do?",
				"are you a robot?",
				"thank you so much",
				"thanks, that was helpful",
				"bye, see you later",
				"what's your name?",
				"tell me a joke",
			},
		},
		{
			Name:      constant.IntentProductQuery,
			Threshold: 0.5,
			Utterances: []string{
				"I'm looking for a red dress for a party",
				"do you have running shoes in size 42?",
				"show me casual shirts for men",
				"I need a warm winter jacket",
				"any black leather handbags available?",
				"what jeans do you recommend for work?",
				"find me a floral summer skirt",
				"I want sneakers under 100 dollars",
				"do you sell kids t-shirts?",
				"looking for an elegant evening gown",
				"what colors does this hoodie come in?",
				"is this sweater available in medium?",
			},
		},
	}
}
