package content

// Guide is a structured set of troubleshooting steps for one issue type.
type Guide struct {
	Steps               []string
	CommonCauses        []string
	EscalationThreshold int
}

var troubleshootingGuides = map[string]Guide{
	"login": {
		Steps: []string{
			"Verify AWS account ID is correct",
			"Check IAM user/role permissions",
			"Clear browser cache and cookies",
			"Try incognito/private browsing mode",
			"Ensure MFA is properly configured",
		},
		CommonCauses:        []string{"Incorrect account ID", "Expired credentials", "Browser cache issues"},
		EscalationThreshold: 3,
	},
	"permission": {
		Steps: []string{
			"Confirm you're in the correct AWS region",
			"Verify IAM policies are attached to your user/role",
			"Check service-specific permissions (S3, IAM, GuardDuty)",
			"Ensure resource-based policies allow access",
			"Contact facilitator if issue persists",
		},
		CommonCauses:        []string{"Missing IAM policies", "Wrong region", "Resource-based policy restrictions"},
		EscalationThreshold: 2,
	},
	"security": {
		Steps: []string{
			"Check S3 bucket policy configuration",
			"Verify Block Public Access settings",
			"Ensure HTTPS-only access is configured",
			"Validate SSE-KMS encryption settings",
			"Review Access Control Lists (ACLs)",
		},
		CommonCauses:        []string{"Misconfigured bucket policies", "Public access enabled", "Encryption not set"},
		EscalationThreshold: 2,
	},
	"setup": {
		Steps: []string{
			"Verify workshop prerequisites are met",
			"Check CloudFormation stack deployment status",
			"Ensure required IAM roles are created",
			"Validate S3 bucket creation and configuration",
			"Test GuardDuty detector setup",
		},
		CommonCauses:        []string{"Missing prerequisites", "CloudFormation failures", "IAM role issues"},
		EscalationThreshold: 2,
	},
	"deployment": {
		Steps: []string{
			"Check CloudFormation stack events for failures",
			"Verify the deployment region matches the workshop region",
			"Confirm service quotas have not been exhausted",
			"Retry the deployment after deleting failed stacks",
			"Contact facilitator if issue persists",
		},
		CommonCauses:        []string{"Stack rollback", "Quota exhaustion", "Wrong region"},
		EscalationThreshold: 2,
	},
}

// TroubleshootingSteps returns the guide for the given issue type, or a
// generic escalate-to-facilitator guide for unknown types.
func TroubleshootingSteps(issueType string) Guide {
	if g, ok := troubleshootingGuides[issueType]; ok {
		return g
	}
	return Guide{
		Steps:               []string{"Contact facilitator for assistance with this specific issue"},
		CommonCauses:        []string{"Unknown issue type"},
		EscalationThreshold: 1,
	}
}
