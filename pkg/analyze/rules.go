package analyze

import "regexp"

// SecurityRule is one entry in the rule table: a regex over a physical
// source line plus the metadata attached to every match.
type SecurityRule struct {
	Pattern     string
	Category    string
	Severity    Severity
	Description string
	Suggestion  string
	CWE         string

	re *regexp.Regexp
}

// securityRules is the fixed, ordered rule table. Patterns are compiled
// case-insensitively once at startup; the table itself is data-only so rule
// matching can be tested independently of the scanning loop.
var securityRules = compileRules([]SecurityRule{
	{
		Pattern:     `eval\s*\(`,
		Category:    "code_injection",
		Severity:    SeverityCritical,
		Description: "Use of eval() - allows arbitrary code execution",
		Suggestion:  "Use ast.literal_eval() for safe evaluation",
		CWE:         "CWE-95",
	},
	{
		Pattern:     `exec\s*\(`,
		Category:    "code_injection",
		Severity:    SeverityCritical,
		Description: "Use of exec() - allows arbitrary code execution",
		Suggestion:  "Avoid exec(), use safer alternatives",
		CWE:         "CWE-95",
	},
	{
		Pattern:     `subprocess\..*shell\s*=\s*True`,
		Category:    "command_injection",
		Severity:    SeverityHigh,
		Description: "shell=True in subprocess - risk of command injection",
		Suggestion:  "Use shell=False and pass args as a list",
		CWE:         "CWE-78",
	},
	{
		Pattern:     `os\.system\s*\(`,
		Category:    "command_injection",
		Severity:    SeverityHigh,
		Description: "os.system() - risk of command injection",
		Suggestion:  "Use subprocess with shell=False",
		CWE:         "CWE-78",
	},
	{
		Pattern:     `pickle\.loads?\s*\(`,
		Category:    "deserialization",
		Severity:    SeverityHigh,
		Description: "Pickle deserialization - risk of arbitrary code execution",
		Suggestion:  "Use JSON or another safe serialization format",
		CWE:         "CWE-502",
	},
	{
		Pattern:     `yaml\.load\s*\([^)]*\)`,
		Category:    "deserialization",
		Severity:    SeverityMedium,
		Description: "Unsafe YAML load",
		Suggestion:  "Use yaml.safe_load() instead",
		CWE:         "CWE-502",
	},
	{
		Pattern:     `password\s*=\s*['"][^'"]+['"]`,
		Category:    "hardcoded_secret",
		Severity:    SeverityHigh,
		Description: "Hardcoded password detected",
		Suggestion:  "Use environment variables or a secrets manager",
		CWE:         "CWE-798",
	},
	{
		Pattern:     `api_key\s*=\s*['"][^'"]+['"]`,
		Category:    "hardcoded_secret",
		Severity:    SeverityHigh,
		Description: "Hardcoded API key detected",
		Suggestion:  "Use environment variables",
		CWE:         "CWE-798",
	},
	{
		Pattern:     `(SELECT|INSERT|UPDATE|DELETE|FROM|WHERE).*\.format\s*\(`,
		Category:    "sql_injection",
		Severity:    SeverityCritical,
		Description: "SQL query built with string formatting - potential injection",
		Suggestion:  "Use parameterized queries",
		CWE:         "CWE-89",
	},
	{
		Pattern:     `verify\s*=\s*False`,
		Category:    "insecure_ssl",
		Severity:    SeverityMedium,
		Description: "SSL certificate verification disabled",
		Suggestion:  "Enable SSL verification",
		CWE:         "CWE-295",
	},
	{
		Pattern:     `(SECRET|KEY|TOKEN|CREDENTIAL|AUTH)\s*=\s*['"][^'"]{8,}['"]`,
		Category:    "hardcoded_secret",
		Severity:    SeverityHigh,
		Description: "Hardcoded secret/key detected",
		Suggestion:  "Use environment variables or a secrets manager",
		CWE:         "CWE-798",
	},
	{
		Pattern:     `hashlib\.md5\s*\(`,
		Category:    "weak_crypto",
		Severity:    SeverityMedium,
		Description: "MD5 is cryptographically weak",
		Suggestion:  "Use SHA-256 or stronger: hashlib.sha256()",
		CWE:         "CWE-328",
	},
	{
		Pattern:     `hashlib\.sha1\s*\(`,
		Category:    "weak_crypto",
		Severity:    SeverityLow,
		Description: "SHA1 is deprecated for security use",
		Suggestion:  "Use SHA-256 or stronger",
		CWE:         "CWE-328",
	},
	{
		Pattern:     `except\s*(Exception)?\s*:\s*(pass|\.\.\.)`,
		Category:    "error_handling",
		Severity:    SeverityMedium,
		Description: "Broad exception silently ignored",
		Suggestion:  "Handle specific exceptions or log the error",
		CWE:         "CWE-390",
	},
	{
		Pattern:     `f['"].*(SELECT|INSERT|UPDATE|DELETE|FROM|WHERE).*\{`,
		Category:    "sql_injection",
		Severity:    SeverityCritical,
		Description: "f-string in SQL query - potential injection",
		Suggestion:  "Use parameterized queries",
		CWE:         "CWE-89",
	},
	{
		Pattern:     `^assert\s+`,
		Category:    "debug_code",
		Severity:    SeverityLow,
		Description: "Assert can be disabled with python -O",
		Suggestion:  "Use explicit validation instead of assert",
		CWE:         "CWE-617",
	},
})

func compileRules(rules []SecurityRule) []SecurityRule {
	for i := range rules {
		rules[i].re = regexp.MustCompile(`(?i)` + rules[i].Pattern)
	}
	return rules
}

// SecurityRules returns the compiled rule table in declaration order.
func SecurityRules() []SecurityRule {
	return securityRules
}

// Match reports whether the rule matches the given source line.
func (r *SecurityRule) Match(line string) bool {
	return r.re.MatchString(line)
}
