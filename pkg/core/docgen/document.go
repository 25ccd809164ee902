package docgen

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fumiama/go-docx"

	"decoy_report/pkg/core/catalog"
	"decoy_report/pkg/core/parse"
)

// Metadata carries the report-level facts rendered on the cover page.
type Metadata struct {
	Vendor         string
	VendorLogoPath string
	OrgName        string
	OrgLogoPath    string
	AnalysisStart  time.Time
	AnalysisEnd    time.Time
	IssuedAt       time.Time
}

const (
	titleColor   = "1B1B70"
	headingSize  = "32"
	titleSize    = "72"
	coverSubSize = "28"
)

// Generate renders the full document skeleton to outputPath: cover page,
// table of contents, one heading+content block per catalog entry in catalog
// order, then the closing vendor page. A section's heading always renders
// even when its body is only placeholder prose; missing images are skipped.
func Generate(report *parse.Report, images map[string]string, meta Metadata, outputPath string) error {
	w := docx.New().WithDefaultTheme()

	addCoverPage(w, meta)
	addTableOfContents(w, meta)

	for _, name := range report.Order {
		section := report.Sections[name]

		addHeading(w, name)

		if img, ok := images[name]; ok && img != "" {
			addImage(w, img)
		}
		for _, table := range section.Tables {
			addTable(w, table)
		}
		if section.Prose != "" {
			w.AddParagraph().AddText(section.Prose)
		}
	}

	addClosingPage(w, meta)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create document %s: %w", outputPath, err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write document %s: %w", outputPath, err)
	}
	return nil
}

func addHeading(w *docx.Docx, text string) {
	p := w.AddParagraph()
	p.AddText(text).Size(headingSize).Bold().Color(titleColor)
}

func addImage(w *docx.Docx, path string) {
	p := w.AddParagraph().Justification("center")
	if _, err := p.AddInlineDrawingFrom(path); err != nil {
		// Asset-unavailable is never fatal; the element is simply omitted.
		log.Printf("[DocGen] cannot embed image %s: %v", path, err)
	}
}

// addTable renders one extracted table as its own grid block: a header row
// followed by the records in extraction order.
func addTable(w *docx.Docx, table parse.Table) {
	rows := len(table.Rows) + 1
	cols := len(table.Columns)
	if cols == 0 {
		return
	}

	t := w.AddTable(rows, cols, 8000, nil)
	for j, col := range table.Columns {
		t.TableRows[0].TableCells[j].AddParagraph().AddText(col).Bold()
	}
	for i, rec := range table.Rows {
		for j, col := range table.Columns {
			t.TableRows[i+1].TableCells[j].AddParagraph().AddText(rec[col])
		}
	}
}

func addCoverPage(w *docx.Docx, meta Metadata) {
	if meta.VendorLogoPath != "" {
		p := w.AddParagraph().Justification("end")
		if _, err := p.AddInlineDrawingFrom(meta.VendorLogoPath); err != nil {
			log.Printf("[DocGen] cannot embed vendor logo: %v", err)
			p.AddText(meta.Vendor).Bold().Color(titleColor)
		}
	}

	title := w.AddParagraph().Justification("center")
	title.AddText("DECOY REPORT").Size(titleSize).Bold().Color(titleColor)

	prepared := w.AddParagraph().Justification("center")
	prepared.AddText("Prepared by: ")
	prepared.AddText(meta.Vendor).Bold()

	if meta.OrgLogoPath != "" {
		p := w.AddParagraph().Justification("center")
		if _, err := p.AddInlineDrawingFrom(meta.OrgLogoPath); err != nil {
			log.Printf("[DocGen] cannot embed organization logo: %v", err)
		}
	}

	orgName := meta.OrgName
	if orgName == "" {
		orgName = "Organization Name"
	}
	org := w.AddParagraph().Justification("center")
	org.AddText(orgName).Size(coverSubSize).Bold().Color(titleColor)

	period := w.AddParagraph().Justification("center")
	period.AddText(fmt.Sprintf("Analysis Period: %s to %s | Issued Date: %s",
		meta.AnalysisStart.Format("02/01/2006"),
		meta.AnalysisEnd.Format("02/01/2006"),
		meta.IssuedAt.Format("02/01/2006")))

	w.AddParagraph().AddPageBreaks()
}

// addTableOfContents lists every catalog section plus the closing page.
// Entries are static text: the docx library exposes the document body only,
// so live PAGEREF fields are out of reach here.
func addTableOfContents(w *docx.Docx, meta Metadata) {
	toc := w.AddParagraph().Justification("center")
	toc.AddText("Table of Contents").Size(headingSize).Bold()

	entries := append(catalog.Names(), catalog.ClosingSection(meta.Vendor))
	for _, name := range entries {
		w.AddParagraph().AddText(name)
	}

	w.AddParagraph().AddPageBreaks()
}

func addClosingPage(w *docx.Docx, meta Metadata) {
	w.AddParagraph().AddPageBreaks()

	h := w.AddParagraph().Justification("center")
	h.AddText(catalog.ClosingSection(meta.Vendor)).Size(headingSize).Bold().Color(titleColor)

	p1 := w.AddParagraph()
	p1.AddText(fmt.Sprintf("%s operates deception-based threat detection for its customers. Decoy "+
		"assets are deployed across customer environments to attract, record and analyze attacker "+
		"activity, and the resulting telemetry feeds the monthly decoy reports, of which this document "+
		"is one.", meta.Vendor))

	p2 := w.AddParagraph()
	p2.AddText(fmt.Sprintf("The analysis in this report is generated from honeypot telemetry collected "+
		"during the stated analysis period. For questions about the findings, or to report a suspected "+
		"compromise, contact your %s engagement team.", meta.Vendor))

	if meta.VendorLogoPath != "" {
		p := w.AddParagraph().Justification("center")
		if _, err := p.AddInlineDrawingFrom(meta.VendorLogoPath); err != nil {
			log.Printf("[DocGen] cannot embed vendor logo: %v", err)
		}
	}
}
