// catalog.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question struct to match the YAML structure. Weight scales how much a
// question contributes to the total score.
type Question struct {
	ID     string  `yaml:"id"`
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

// Catalog struct to hold all pulse survey questions.
type Catalog struct {
	Questions []Question `yaml:"questions"`
}

// LoadCatalog reads and parses the questions.yaml file. Questions with no
// weight in the file default to 1.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog YAML: %w", err)
	}

	for i := range catalog.Questions {
		if catalog.Questions[i].Weight == 0 {
			catalog.Questions[i].Weight = 1
		}
	}
	return &catalog, nil
}

// Weight returns the weight of the question with the given ID.
func (c *Catalog) Weight(id string) (float64, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q.Weight, true
		}
	}
	return 0, false
}

// TotalWeight sums the weights of every question in the catalog.
func (c *Catalog) TotalWeight() float64 {
	var total float64
	for _, q := range c.Questions {
		total += q.Weight
	}
	return total
}
