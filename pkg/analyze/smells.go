package analyze

import "strings"

// Smell type identifiers used as issue categories.
const (
	SmellGodFile      = "god_file"
	SmellLLMArtifact  = "llm_artifact"
	SmellLongName     = "long_name"
	SmellArrowPattern = "arrow_pattern"
	SmellExceptPass   = "except_pass"
)

// Detection thresholds.
const (
	godFileLines    = 1000
	longNameChars   = 35
	maxNestingDepth = 3
)

// smellRemediation maps each smell type to its canned remediation message.
var smellRemediation = map[string]string{
	SmellGodFile:      "Split this file into smaller, focused modules.",
	SmellLLMArtifact:  "Remove leftover assistant chatter from the source.",
	SmellLongName:     "Shorten the identifier to something readable.",
	SmellArrowPattern: "Flatten nested control flow with early returns or helper functions.",
	SmellExceptPass:   "Handle the specific exception or log it instead of swallowing it.",
}

// llmPhrases are assistant-speech fragments that indicate pasted chat output.
var llmPhrases = []string{
	"Sure, here is",
	"Here's the code",
	"I'll help you",
	"Let me explain",
	"As an AI",
	"I cannot",
}

// isLLMArtifactLine reports whether a line contains an assistant-speech
// phrase inside a comment or string context.
func isLLMArtifactLine(line string) bool {
	if !strings.Contains(line, `"""`) && !strings.Contains(line, "'''") && !strings.Contains(line, "#") {
		return false
	}
	for _, phrase := range llmPhrases {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}
