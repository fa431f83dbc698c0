// FILE: internal/entity/report_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResumeReport stores one resume-analysis result as a JSON document.
// The payload schema is versioned via report_metadata.report_version;
// documents without a version prefixed "2." are legacy v1 and get
// rebuilt by the migration tool.
type ResumeReport struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	FileName  string
	Payload   map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}
