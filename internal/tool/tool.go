package tool

import (
	"time"

	"github.com/google/uuid"
)

// DefaultVersion is displayed for tools that do not specify a version
const DefaultVersion = "1.0.0"

// Tool represents a single developer tool listed in the catalog
type Tool struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version,omitempty"`
	Route       string    `json:"route"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayVersion returns the version of the tool or DefaultVersion if none is set
func (tool *Tool) DisplayVersion() string {
	if tool.Version == "" {
		return DefaultVersion
	}
	return tool.Version
}
