// Package catalog serves the static doctor dataset: load once at
// startup, filter and sort in memory per request.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Catalog holds the loaded doctor list.
type Catalog struct {
	doctors []Doctor
	byID    map[int]Doctor
	logger  *logging.Logger
}

// LoadFile reads the doctor dataset from a JSON file. The catalog is
// bounded and static, so the whole list lives in memory.
func LoadFile(path string, logger *logging.Logger) (*Catalog, error) {
	if logger == nil {
		logger = logging.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var doctors []Doctor
	if err := json.Unmarshal(data, &doctors); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return New(doctors, logger), nil
}

// New builds a catalog from an already-loaded doctor list.
func New(doctors []Doctor, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	byID := make(map[int]Doctor, len(doctors))
	for _, d := range doctors {
		byID[d.ID] = d
	}
	logger.Info("doctor catalog loaded", "doctors", len(doctors))
	return &Catalog{doctors: doctors, byID: byID, logger: logger}
}

// Doctors returns the full catalog in dataset order.
func (c *Catalog) Doctors() []Doctor {
	return c.doctors
}

// ByID looks up one doctor.
func (c *Catalog) ByID(id int) (Doctor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Search applies the filter to the catalog.
func (c *Catalog) Search(f Filter) []Doctor {
	return Apply(c.doctors, f)
}
