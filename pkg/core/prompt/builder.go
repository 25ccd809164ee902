package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"decoy_report/pkg/core/catalog"
	"decoy_report/pkg/core/ingest"
)

// BuildDigest serializes the sampled source rows into the textual snapshot
// embedded in the prompt. Per source: a labeled header, then the first
// DigestRowLimit rows in their existing order, each as a 1-based index and
// an ordered field:value listing. Sheets arrive in workbook order, so the
// digest is deterministic for a given workbook.
func BuildDigest(sheets []ingest.Sheet) string {
	var b strings.Builder
	for _, sheet := range sheets {
		b.WriteString(fmt.Sprintf("\n--- %s ---\n", sheet.Name))

		limit := len(sheet.Rows)
		if limit > DigestRowLimit {
			limit = DigestRowLimit
		}
		for i := 0; i < limit; i++ {
			pairs := make([]string, len(sheet.Columns))
			for j, col := range sheet.Columns {
				pairs[j] = fmt.Sprintf("%s: %s", col, sheet.Rows[i][j])
			}
			b.WriteString(fmt.Sprintf("%d. {%s}\n", i+1, strings.Join(pairs, ", ")))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// sectionDirectives renders the catalog enumeration the model must follow:
// ordinal, canonical name, and the per-section content directive.
func sectionDirectives() string {
	var b strings.Builder
	for _, e := range catalog.Sections() {
		b.WriteString(fmt.Sprintf("%d. %s\n%s\n\n", e.Ordinal, e.Name, e.Directive))
	}
	return b.String()
}

// BuildReportPrompt renders the full instruction string for one run:
// persona, embedded digest, and the exact section catalog with directives.
// The system prompt comes back separately for providers that carry it as a
// distinct role.
func BuildReportPrompt(vendor string, sheets []ingest.Sheet) (userPrompt string, systemPrompt string, err error) {
	t, err := Get().GetTemplate(ReportPromptID)
	if err != nil {
		return "", "", err
	}

	tmpl, err := template.New(t.ID).Parse(t.UserPromptTmpl)
	if err != nil {
		return "", "", fmt.Errorf("invalid user prompt template %s: %w", t.ID, err)
	}

	var out bytes.Buffer
	data := struct {
		Vendor   string
		Digest   string
		Sections string
	}{
		Vendor:   vendor,
		Digest:   BuildDigest(sheets),
		Sections: sectionDirectives(),
	}
	if err := tmpl.Execute(&out, data); err != nil {
		return "", "", fmt.Errorf("failed to render prompt %s: %w", t.ID, err)
	}
	return out.String(), t.SystemPrompt, nil
}

// defaultReportTemplate is the built-in instruction wording. The numbering
// and bare-name headers it mandates are exactly what the section splitter's
// accepted surface forms recognize.
func defaultReportTemplate() *Template {
	return &Template{
		ID:           ReportPromptID,
		Name:         "Honeypot security report",
		Description:  "Synthesizes a structured narrative security report from a honeypot telemetry digest.",
		SystemPrompt: "You are a cybersecurity analyst writing structured reports.",
		UserPromptTmpl: `You are a cybersecurity analyst working for {{.Vendor}}.

You are provided with honeypot logs captured across multiple dimensions of cybersecurity telemetry. Below is the combined snapshot of this data:

{{.Digest}}

Your task is to analyze this data and generate a complete security report. Write substantial analysis content under each section header. Each section should contain 2-3 paragraphs of analysis.

Format your response EXACTLY like this:

{{.Sections}}IMPORTANT: Write substantial content under each numbered section. Do not just list the headers. Analyze the actual data provided above.`,
		Version: "1.0",
	}
}
