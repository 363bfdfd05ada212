package entities

// Well-known schedule periods, in the order a day runs through them.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodNight     = "night"
)

// ScheduleEntry is the reminder for one period of the day.
// Time is a 24h "HH:MM" string.
type ScheduleEntry struct {
	Period    string         `json:"period" yaml:"period"`
	Time      string         `json:"time" yaml:"time"`
	Greeting  string         `json:"greeting" yaml:"greeting"`
	Message   string         `json:"message" yaml:"message"`
	Medicines []MedicineDose `json:"medicines" yaml:"medicines"`
}

// Labels returns the medicine labels in schedule order.
func (e ScheduleEntry) Labels() []string {
	labels := make([]string, 0, len(e.Medicines))
	for _, m := range e.Medicines {
		labels = append(labels, m.Label())
	}
	return labels
}
