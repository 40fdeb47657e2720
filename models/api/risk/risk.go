package riskapimodels

import "hr-scheduler-backend/models"

type RiskReport struct {
	NoShowRisk float64          `json:"no_show_risk"`
	RiskLevel  models.RiskLevel `json:"risk_level"`
	Factors    RiskFactors      `json:"factors"`
}

type RiskFactors struct {
	ResponseTimeHours     float64 `json:"response_time_hours"`
	NegotiationRounds     int     `json:"negotiation_rounds"`
	ProfileCompleteness   float64 `json:"profile_completeness"`
	HistoricalReliability float64 `json:"historical_reliability"`
}
