package gptmodels

// формат JSON, который оракул обязан вернуть при разборе доступности
type ExtractedAvailability struct {
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	PreferredHours *ExtractedHours `json:"preferred_hours,omitempty"`
	PreferredDays  []string        `json:"preferred_days,omitempty"`
}

type ExtractedHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
