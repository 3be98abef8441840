package document

import (
	"fmt"
	"strings"
	"time"

	"rental-intake/internal/domain/validation"
)

// Document is the record the file storage collaborator hands back after an
// upload. Only the metadata is kept here.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Size       int64     `json:"size,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Constraints struct {
	AllowedTypes []string
	MaxSizeMB    int
	Multiple     bool
}

func DefaultConstraints() Constraints {
	return Constraints{
		AllowedTypes: []string{"image/jpeg", "image/png", "application/pdf"},
		MaxSizeMB:    5,
		Multiple:     true,
	}
}

func (c Constraints) allows(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	for _, t := range c.AllowedTypes {
		if strings.EqualFold(t, mediaType) {
			return true
		}
	}
	return false
}

func (c Constraints) maxBytes() int64 { return int64(c.MaxSizeMB) * 1024 * 1024 }

// Check validates a document list as a whole: every entry must be allowed,
// within size, and carry a locator; single-file mode accepts at most one.
func (c Constraints) Check(docs []Document) error {
	v := validation.New("documents")
	if !c.Multiple && len(docs) > 1 {
		v.Add("documents", "only one document may be attached")
	}
	for i, d := range docs {
		field := fmt.Sprintf("documents[%d]", i)
		if validation.Blank(d.ID) || validation.Blank(d.URL) {
			v.Add(field, "must have an id and url")
		}
		if !c.allows(d.Type) {
			v.Add(field, "file type not allowed: "+d.Type)
		}
		if c.MaxSizeMB > 0 && d.Size > c.maxBytes() {
			v.Add(field, fmt.Sprintf("file too large: %s (max %dMB)", d.Name, c.MaxSizeMB))
		}
	}
	return v.Err()
}
