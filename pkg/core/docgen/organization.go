// Package docgen assembles the final paginated report document. It is a
// sink: it consumes the parsed sections, the chart artifacts and the run
// metadata, and never fails a run over a missing visual asset.
package docgen

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// OrganizationInfo resolves the customer organization's display name and
// logo from a path that is either a logo file or a folder of logos. In the
// folder case the vendor's own logo file is excluded and the first customer
// logo wins. The display name is derived from the file stem. Absence of
// both is a valid state.
func OrganizationInfo(logoPath, vendorLogoName string) (orgName, orgLogoPath string) {
	if logoPath == "" {
		log.Printf("[DocGen] no logo path provided")
		return "", ""
	}

	info, err := os.Stat(logoPath)
	if err != nil {
		log.Printf("[DocGen] logo path does not exist: %s", logoPath)
		return "", ""
	}

	if !info.IsDir() {
		return displayName(logoPath), logoPath
	}

	entries, err := os.ReadDir(logoPath)
	if err != nil {
		log.Printf("[DocGen] cannot read logo folder %s: %v", logoPath, err)
		return "", ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !logoExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if vendorLogoName != "" && name == vendorLogoName {
			continue
		}
		path := filepath.Join(logoPath, name)
		log.Printf("[DocGen] found organization logo: %s", path)
		return displayName(path), path
	}

	log.Printf("[DocGen] no organization logo found in %s", logoPath)
	return "", ""
}

// displayName turns a logo file stem into a presentable organization name:
// underscores and hyphens become spaces, words are title-cased.
func displayName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
