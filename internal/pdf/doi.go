// Package pdf pulls lookup identifiers out of paper PDFs. Most published
// papers print their DOI on the first page, which is enough to fetch the full
// entry from CrossRef.
package pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/seb/internal/seb"
)

var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// doiSearchPages bounds how deep into the document to look; the DOI is on
// the first page of almost every layout.
const doiSearchPages = 3

// ExtractDOI searches the leading pages of the PDF at path for a DOI. A file
// without one is a NoValue error.
func ExtractDOI(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", seb.WrapWith(seb.KindIO, err, fmt.Sprintf("unable to open PDF at %s", path))
	}
	defer f.Close()

	pages := doiSearchPages
	if r.NumPage() < pages {
		pages = r.NumPage()
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", seb.New(seb.KindNoValue, fmt.Sprintf("no DOI found in the first %d pages of %s", pages, path))
}

func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI rejects pattern matches that are too short or truncated to be a
// resolvable DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}
