package content

import (
	"fmt"
	"strings"
	"testing/fstest"
)

// caseStudyDoc builds a case study document; empty values are left out of the frontmatter
func caseStudyDoc(title, date, order, body string) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	if title != "" {
		sb.WriteString(fmt.Sprintf("title: %q\n", title))
	}
	sb.WriteString("role: Product Manager\n")
	sb.WriteString("company: Acme Robotics\n")
	if date != "" {
		sb.WriteString(fmt.Sprintf("date: %q\n", date))
	}
	sb.WriteString("summary: Shipping models onto the warehouse floor\n")
	if order != "" {
		sb.WriteString(fmt.Sprintf("order: %s\n", order))
	}
	sb.WriteString("---\n\n")
	sb.WriteString(body)
	return sb.String()
}

func writingDoc(title, date, extra string) string {
	return fmt.Sprintf("---\ntitle: %q\ndate: %q\nsummary: A short essay\n%s---\n\nSome words here.\n", title, date, extra)
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}
