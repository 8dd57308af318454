package redactor

// DefaultPatterns returns the built-in credential and PII patterns the strict
// profile adds. They are high precision by intent: a false negative leaks,
// but a false positive mangles an otherwise useful transcript.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:    "Anthropic API Key",
			Pattern: `sk-ant-[A-Za-z0-9]+-[A-Za-z0-9_-]{20,}`,
			Type:    "api_key",
		},
		{
			Name:    "OpenAI API Key",
			Pattern: `sk-(?:proj-)?[A-Za-z0-9_-]{40,}`,
			Type:    "api_key",
		},
		{
			Name:    "AWS Access Key",
			Pattern: `(?:AKIA|ASIA)[0-9A-Z]{16}`,
			Type:    "aws_key",
		},
		{
			Name:         "AWS Secret Key",
			Pattern:      `aws_secret_access_key\s*[=:]\s*([A-Za-z0-9/+=]{40})`,
			Type:         "aws_secret",
			CaptureGroup: 1,
		},
		{
			Name:    "GitHub Token",
			Pattern: `gh[pousr]_[A-Za-z0-9]{36,}`,
			Type:    "github_token",
		},
		{
			Name:    "GitHub Fine-Grained Token",
			Pattern: `github_pat_[A-Za-z0-9_]{40,}`,
			Type:    "github_token",
		},
		{
			Name:    "Slack Token",
			Pattern: `xox[baprs]-[0-9A-Za-z-]{10,72}`,
			Type:    "slack_token",
		},
		{
			Name:    "Stripe Live Key",
			Pattern: `[rs]k_live_[0-9A-Za-z]{24,}`,
			Type:    "stripe_key",
		},
		{
			Name:    "Google API Key",
			Pattern: `AIza[0-9A-Za-z_-]{35}`,
			Type:    "google_api_key",
		},
		{
			Name:    "JWT",
			Pattern: `eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`,
			Type:    "jwt",
		},
		{
			Name:    "Private Key Header",
			Pattern: `-----BEGIN (?:RSA |EC |OPENSSH |DSA )?PRIVATE KEY-----`,
			Type:    "private_key",
		},
		{
			Name:         "Bearer Token",
			Pattern:      `(?i)(authorization:\s*bearer\s+)([A-Za-z0-9._~+/=-]{16,})`,
			Type:         "token",
			CaptureGroup: 2,
		},
		{
			Name:         "Connection String Password",
			Pattern:      `([a-z][a-z0-9+.-]*://[^:/@\s]+:)([^@\s]+)(@)`,
			Type:         "password",
			CaptureGroup: 2,
		},
		{
			Name:         "Password Assignment",
			Pattern:      `(?i)((?:password|passwd|secret|api_key|apikey|token)\s*[=:]\s*["']?)([^\s"']{6,})`,
			Type:         "password",
			CaptureGroup: 2,
		},
		{
			Name:    "Email Address",
			Pattern: `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
			Type:    "email",
		},
		{
			Name:    "IPv4 Address",
			Pattern: `\b(?:(?:25[0-5]|2[0-4]\d|1?\d?\d)\.){3}(?:25[0-5]|2[0-4]\d|1?\d?\d)\b`,
			Type:    "ip",
		},
	}
}
