package advisor

// Greeting introduces the advisor before the first question.
const Greeting = "Hi! I'm your new **Scenario Advisor**. I analyze your current inputs " +
	"to give instant feedback on savings and environmental impact."

// SuggestedQuestions are offered to users who have not asked anything yet.
// Each one lands in a different category.
var SuggestedQuestions = []string{
	"How does this affect my wallet?",
	"When do I break even?",
	"Is this good for the planet?",
}
