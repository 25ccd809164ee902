// Package prompt builds the instruction text sent to the model. Templates
// live in a small registry so an operator can override the wording from a
// JSON or HJSON file without recompiling; the built-in default enumerates
// the section catalog, which keeps the instruction and the parser's header
// matcher on the same constant.
package prompt

// Template is a reusable prompt with metadata.
type Template struct {
	ID             string `json:"id"`                   // Unique identifier (e.g. "report.security_analysis")
	Name           string `json:"name"`                 // Human-readable name
	Description    string `json:"description"`          // Purpose of the prompt
	SystemPrompt   string `json:"system_prompt"`        // The system prompt content
	UserPromptTmpl string `json:"user_prompt_template"` // Go template for the user prompt
	Version        string `json:"version"`              // Version for tracking changes
}

// ReportPromptID is the registry ID of the report-generation template.
const ReportPromptID = "report.security_analysis"

// DigestRowLimit caps how many rows of each source are embedded in the
// prompt. First N in input order: a token-budget cap, not a sampling
// strategy.
const DigestRowLimit = 15
