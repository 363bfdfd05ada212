// Package entities holds the data model of the medicine reminder: the daily
// schedule, stock levels, expiry dates, the medicine catalog and the
// notifications produced from them.
package entities

// MedicineDose is one medicine as it appears in a schedule entry.
type MedicineDose struct {
	Name     string `json:"name" yaml:"name"`
	Strength string `json:"strength,omitempty" yaml:"strength,omitempty"`
}

// Label returns the display label, "Metformin - 500mg" or just the name
// when no strength is set.
func (d MedicineDose) Label() string {
	if d.Strength == "" {
		return d.Name
	}
	return d.Name + " - " + d.Strength
}
