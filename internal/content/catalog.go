package content

import (
	"fmt"
	"strings"
)

// Catalog is the static workshop content index. It is built once at startup
// and consumed read-only by the chat orchestrator for relevance lookup; it is
// not part of the analytics path.
type Catalog struct {
	WorkshopTitle    string
	Labs             []string
	SetupGuides      []string
	SecurityTopics   []string
	ToolsAndServices []string
}

// NewCatalog classifies raw document titles into the catalog sections.
// Titles beginning with "Lab " are labs; the remaining sections are keyword
// matched, with security topics as the default bucket.
func NewCatalog(title string, documents []string) *Catalog {
	c := &Catalog{WorkshopTitle: title}
	for _, doc := range documents {
		switch {
		case strings.HasPrefix(doc, "Lab "):
			c.Labs = append(c.Labs, doc)
		case containsAny(doc, "Setup", "Prepare", "Initial"):
			c.SetupGuides = append(c.SetupGuides, doc)
		case containsAny(doc, "Security", "Access", "Block", "Encrypt", "HTTPS"):
			c.SecurityTopics = append(c.SecurityTopics, doc)
		case containsAny(doc, "Athena", "CloudTrail", "GuardDuty", "Config"):
			c.ToolsAndServices = append(c.ToolsAndServices, doc)
		default:
			c.SecurityTopics = append(c.SecurityTopics, doc)
		}
	}
	return c
}

// NewDefaultCatalog returns the built-in S3 security workshop index used when
// no external content listing is configured.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(
		"Configuring Amazon S3 Security Settings and Access Controls",
		[]string{
			"Lab 1 - S3 Security Exercises",
			"Lab 2 - S3 Access Grants",
			"Lab 3 - Enabling Malware Protection for S3 by using GuardDuty",
			"Lab 4 - S3 Access Control Lists",
			"Prepare Your Lab",
			"S3 Access Grants Lab - Initial Setup",
			"Configure S3 Block Public Access",
			"Block Public ACLs",
			"Disable S3 ACLs",
			"Require HTTPS",
			"Require SSE-KMS Encryption",
			"S3 Security Best Practices",
			"Restrict Access to an S3 VPC Endpoint",
			"Athena Log Analysis",
			"CloudTrail Data Events",
			"AWS Config Rules for S3",
		},
	)
}

// Context renders the catalog as the workshop context block included in every
// model prompt.
func (c *Catalog) Context() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workshop: %s\n", c.WorkshopTitle)
	writeSection(&b, "Available Labs", c.Labs)
	writeSection(&b, "Setup Guides", c.SetupGuides)
	writeSection(&b, "Security Topics Covered", c.SecurityTopics)
	writeSection(&b, "AWS Services & Tools", c.ToolsAndServices)
	return strings.TrimSpace(b.String())
}

func writeSection(b *strings.Builder, heading string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, e := range entries {
		fmt.Fprintf(b, "- %s\n", e)
	}
}

// RelevantContent returns catalog entries whose titles share a word with the
// query, prefixed by their section. Matching is case-insensitive on whole
// query words.
func (c *Catalog) RelevantContent(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	var relevant []string
	match := func(title string) bool {
		lower := strings.ToLower(title)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	for _, lab := range c.Labs {
		if match(lab) {
			relevant = append(relevant, "Lab: "+lab)
		}
	}
	for _, topic := range c.SecurityTopics {
		if match(topic) {
			relevant = append(relevant, "Topic: "+topic)
		}
	}
	for _, tool := range c.ToolsAndServices {
		if match(tool) {
			relevant = append(relevant, "Tool: "+tool)
		}
	}
	return relevant
}

// TroubleshootingContext maps an issue type to the workshop materials worth
// pointing a participant at.
func (c *Catalog) TroubleshootingContext(issueType string) []string {
	switch issueType {
	case "permission":
		return []string{
			"Configure S3 Access Grants for IAM user",
			"Attach IAM Role to EC2 Instance",
			"Restrict Access to an S3 VPC Endpoint",
		}
	case "access":
		return []string{
			"Configure S3 Block Public Access",
			"Block Public ACLs",
			"Disable S3 ACLs",
		}
	case "security":
		return []string{
			"Require HTTPS",
			"Require SSE-KMS Encryption",
			"S3 Security Best Practices",
		}
	case "setup":
		return []string{
			"Prepare Your Lab",
			"S3 Access Grants Lab - Initial Setup",
		}
	default:
		return nil
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
