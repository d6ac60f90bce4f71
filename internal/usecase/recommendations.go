package usecase

// recommendationRule is one row of the advisory decision table. Rules are
// evaluated independently, in order; each contributes at most one line.
type recommendationRule struct {
	applies func(score, questions, chats int) bool
	advice  string
}

var recommendationRules = []recommendationRule{
	{
		applies: func(score, _, _ int) bool { return score > 70 },
		advice:  "High engagement detected - workshop is going well",
	},
	{
		applies: func(score, _, _ int) bool { return score < 30 },
		advice:  "Low engagement - consider encouraging more participation",
	},
	{
		applies: func(_, questions, _ int) bool { return questions > 5 },
		advice:  "Many questions being asked - consider extending Q&A time",
	},
	{
		applies: func(_, questions, _ int) bool { return questions < 2 },
		advice:  "Few questions - consider prompting for questions",
	},
	{
		applies: func(_, _, chats int) bool { return chats > 10 },
		advice:  "Good chat interaction",
	},
	{
		applies: func(_, _, chats int) bool { return chats <= 10 },
		advice:  "Encourage more chat participation",
	},
}

// recommendationsFor maps aggregate counts to canned advisory strings.
func recommendationsFor(score, questionCount, chatCount int) []string {
	out := make([]string, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		if rule.applies(score, questionCount, chatCount) {
			out = append(out, rule.advice)
		}
	}
	return out
}
