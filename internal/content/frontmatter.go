package content

import (
	"bytes"
	"errors"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFormat is the only frontmatter block the site accepts: YAML between --- lines
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ParseDocument splits raw document text into its frontmatter fields and body.
// A document without a frontmatter block, or with one that is not a YAML mapping,
// fails with MalformedDocumentError.
func ParseDocument(raw []byte) (map[string]any, string, error) {
	var fields map[string]any

	body, err := frontmatter.MustParse(bytes.NewReader(raw), &fields, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, "", &MalformedDocumentError{Message: "frontmatter block not found"}
		}
		return nil, "", &MalformedDocumentError{Message: "failed to parse frontmatter", Cause: err}
	}

	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, string(body), nil
}
