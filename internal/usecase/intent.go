package usecase

import "strings"

type Intent string

const (
	IntentTechnical Intent = "technical_issue"
	IntentGeneral   Intent = "general_question"
)

// intentRule is one row of the classifier table: if any keyword occurs in
// the lowercased message, the rule's intent wins.
type intentRule struct {
	keywords []string
	intent   Intent
}

// Rules are evaluated in order, first match wins. Anything not matching a
// technical keyword is treated as general Q&A.
var intentRules = []intentRule{
	{keywords: []string{"login", "access", "permission", "error", "stuck", "deploy"}, intent: IntentTechnical},
}

func classifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// issueTypeRule maps message keywords to a troubleshooting issue type.
type issueTypeRule struct {
	keywords  []string
	issueType string
}

// Ordered, first match wins: a message mentioning both "login" and
// "permission" is a login issue.
var issueTypeRules = []issueTypeRule{
	{keywords: []string{"login"}, issueType: "login"},
	{keywords: []string{"permission", "access", "iam", "role"}, issueType: "permission"},
	{keywords: []string{"security", "encrypt", "https", "acl"}, issueType: "security"},
	{keywords: []string{"setup", "prepare", "lab"}, issueType: "setup"},
	{keywords: []string{"deploy", "error", "stuck"}, issueType: "deployment"},
}

func classifyIssueType(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range issueTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.issueType
			}
		}
	}
	return "general"
}
