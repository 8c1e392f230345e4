package framework

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/maturity/internal/domain/model"
)

// ErrInvalidFile is returned when a framework file cannot be used.
var ErrInvalidFile = errors.New("invalid framework file")

// Default returns a fresh copy of the built-in e-government framework.
func Default() []model.Dimension {
	return []model.Dimension{
		{
			ID: "dim-1", Name: "Digital Services", Weight: 25,
			Elements: []model.Element{
				{ID: "el-1-1", Name: "Service Availability (Online)", Weight: 40},
				{ID: "el-1-2", Name: "Mobile Accessibility", Weight: 30},
				{ID: "el-1-3", Name: "User-Centric Design", Weight: 30},
			},
		},
		{
			ID: "dim-2", Name: "Interoperability", Weight: 20,
			Elements: []model.Element{
				{ID: "el-2-1", Name: "Cross-Agency Data Sharing", Weight: 50},
				{ID: "el-2-2", Name: "Standardized APIs", Weight: 50},
			},
		},
		{
			ID: "dim-3", Name: "E-Participation", Weight: 15,
			Elements: []model.Element{
				{ID: "el-3-1", Name: "Online Consultation Platforms", Weight: 60},
				{ID: "el-3-2", Name: "Digital Voting Mechanisms", Weight: 40},
			},
		},
		{
			ID: "dim-4", Name: "Organizational Readiness", Weight: 20,
			Elements: []model.Element{
				{ID: "el-4-1", Name: "Digital Skills & Training", Weight: 40},
				{ID: "el-4-2", Name: "Change Management Strategy", Weight: 30},
				{ID: "el-4-3", Name: "IT Governance", Weight: 30},
			},
		},
		{
			ID: "dim-5", Name: "Emerging Technologies", Weight: 20,
			Elements: []model.Element{
				{ID: "el-5-1", Name: "AI & ML Adoption", Weight: 50},
				{ID: "el-5-2", Name: "IoT for Smart City Initiatives", Weight: 50},
			},
		},
	}
}

// fileDoc is the YAML layout of a framework file.
type fileDoc struct {
	Dimensions []model.Dimension `yaml:"dimensions"`
}

// LoadFile reads a YAML framework definition. Missing ids are filled in
// positionally and weights are taken as written.
func LoadFile(path string) ([]model.Dimension, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return Parse(b)
}

// Parse decodes a YAML framework definition.
func Parse(b []byte) ([]model.Dimension, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if len(doc.Dimensions) == 0 {
		return nil, fmt.Errorf("%w: no dimensions", ErrInvalidFile)
	}
	for i := range doc.Dimensions {
		d := &doc.Dimensions[i]
		if d.ID == "" {
			d.ID = fmt.Sprintf("%s%d", dimensionPrefix, i+1)
		}
		if d.Elements == nil {
			d.Elements = []model.Element{}
		}
		for j := range d.Elements {
			if d.Elements[j].ID == "" {
				d.Elements[j].ID = fmt.Sprintf("%s%d-%d", elementPrefix, i+1, j+1)
			}
		}
	}
	return doc.Dimensions, nil
}

// Marshal renders dimensions in the framework file layout.
func Marshal(dims []model.Dimension) ([]byte, error) {
	return yaml.Marshal(fileDoc{Dimensions: dims})
}
