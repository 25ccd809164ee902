// Package catalog defines the fixed, ordered section catalog shared between
// prompt construction and report parsing. Keeping both sides on this single
// constant is what prevents the instruction text and the header matcher from
// drifting apart.
package catalog

import "fmt"

// ChartKind identifies which generated chart, if any, a section carries.
type ChartKind int

const (
	ChartNone ChartKind = iota
	ChartTrend
	ChartProtocol
)

// Entry is one canonical report section: its 1-based ordinal as emitted in
// the model instructions, its canonical name as matched on parse-back, the
// per-section content directive embedded in the prompt, and its chart
// binding.
type Entry struct {
	Ordinal   int
	Name      string
	Directive string
	Chart     ChartKind
}

// ClosingSection names the fixed non-catalog document section appended
// after the analysis content. It appears in the table of contents but never
// in the model prompt or the parser.
func ClosingSection(vendor string) string {
	return "About " + vendor
}

// sections is the one authoritative ordering. Ordinals are significant for
// the prompt; matching on parse-back is name-based.
var sections = []Entry{
	{1, "Attack Indicators",
		"Based on the honeypot data analysis, identify the critical attack indicators.",
		ChartNone},
	{2, "Honeypot Attack Trends",
		"The honeypot deployment has captured significant attack activity during the monitoring period... " +
			"[Write detailed paragraphs about timing patterns across different weeks highlighting the changes. " +
			"Mention the description of each week with its name and what changed in the subsequent week and why " +
			"that happened with respect to unique IP counts and total hit count and other things if you find so. " +
			"Dont mention any attributes from the data itself instead give an analysis based on the data]",
		ChartTrend},
	{3, "Network Traffic by Protocol",
		"Analysis of network protocols reveals... [Write detailed paragraphs about most targeted protocols]",
		ChartProtocol},
	{4, "Indicator of Attacks",
		`Just Type - "Indicators are given below".`,
		ChartNone},
	{5, "Top IP Addresses",
		"The most active attacking IP addresses demonstrate... [Give ONLY a table for the top 20 IP addresses " +
			"with respect to severity of attacks(should include highest to lowest severity). In the table also " +
			"include severity and action of each value]",
		ChartNone},
	{6, "Credential Patterns",
		"Attack credential patterns reveal... [Identify username/password patterns, common combinations, brute " +
			"force attempts. Create a table for top 6 most common usernames that have been attacked along with " +
			"the protocol service they have been attacked on and then create a table for top 6 passwords that " +
			"have been attacked along with the protocol service they have been attacked on]",
		ChartNone},
	{7, "Subdomains",
		"Subdomain enumeration and targeting shows... [Give a table for the top 20 subdomains and the number of " +
			"attacks they have been involved in]",
		ChartNone},
	{8, "Email Addresses",
		"Email-related attack vectors include... [Give a table for the top 20 email addresses and the number of " +
			"attacks they have been involved in]",
		ChartNone},
	{9, "Hashes",
		"Malware hash analysis indicates... [Give a table for the top 5 hashes and the number of attacks they " +
			"have been involved in]",
		ChartNone},
}

// Sections returns the catalog in its fixed order.
func Sections() []Entry {
	out := make([]Entry, len(sections))
	copy(out, sections)
	return out
}

// Names returns the canonical section names in catalog order.
func Names() []string {
	names := make([]string, len(sections))
	for i, e := range sections {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the entry for a canonical name.
func Lookup(name string) (Entry, bool) {
	for _, e := range sections {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Placeholder is the prose substituted for a section whose header was never
// detected in the model output.
func Placeholder(name string) string {
	return fmt.Sprintf("No content found for %s section.", name)
}
