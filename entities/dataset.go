package entities

// Dataset is everything the monitor and the catalog read. It is treated as
// immutable once loaded; a reload replaces it as a whole.
type Dataset struct {
	Patient    string          `json:"patient" yaml:"patient"`
	Schedule   []ScheduleEntry `json:"schedule" yaml:"schedule"`
	Stock      []StockItem     `json:"stock" yaml:"stock"`
	Expiry     []ExpiryRecord  `json:"expiry" yaml:"expiry"`
	Categories []Category      `json:"categories" yaml:"categories"`
}

// ScheduleFor returns the entry for a period.
func (d *Dataset) ScheduleFor(period string) (ScheduleEntry, bool) {
	for _, e := range d.Schedule {
		if e.Period == period {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}

// ExpiryFor returns the expiry record whose name matches exactly.
func (d *Dataset) ExpiryFor(name string) (ExpiryRecord, bool) {
	for _, e := range d.Expiry {
		if e.Name == name {
			return e, true
		}
	}
	return ExpiryRecord{}, false
}

// CategoryFor returns the category with the given slug.
func (d *Dataset) CategoryFor(slug string) (Category, bool) {
	for _, c := range d.Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}
