package rendering

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// JSONLDBlock is one ld+json script found in an HTML document
type JSONLDBlock struct {
	Type string
	Raw  json.RawMessage
}

// ExtractJSONLD returns the ld+json blocks of an HTML document in document order
func ExtractJSONLD(html string) ([]JSONLDBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &RenderError{Message: "failed to parse HTML", Cause: err}
	}

	blocks := make([]JSONLDBlock, 0)
	var extractErr error
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		var header struct {
			Type string `json:"@type"`
		}
		if err := json.Unmarshal([]byte(raw), &header); err != nil {
			extractErr = &RenderError{Message: fmt.Sprintf("ld+json block %d is not a JSON object", i+1), Cause: err}
			return false
		}
		blocks = append(blocks, JSONLDBlock{Type: header.Type, Raw: json.RawMessage(raw)})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}
	return blocks, nil
}
