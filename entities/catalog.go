package entities

// MedicineInfo is a catalog card shown by the category browser.
type MedicineInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Image       string   `json:"image" yaml:"image"`
	Description string   `json:"description" yaml:"description"`
	Dosage      string   `json:"dosage" yaml:"dosage"`
	SideEffects []string `json:"sideEffects" yaml:"sideEffects"`
	Precautions string   `json:"precautions" yaml:"precautions"`
}

// Category groups catalog cards under a slug such as "blood-pressure".
type Category struct {
	Slug      string         `json:"slug" yaml:"slug"`
	Medicines []MedicineInfo `json:"medicines" yaml:"medicines"`
}
