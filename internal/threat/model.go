package threat

import "time"

// Threat is an imported threat-intelligence record. JSON names follow the
// dataset's column headers.
type Threat struct {
	ID                       int64     `json:"id"`
	ThreatCategory           string    `json:"Threat_Category"`
	IOCs                     []string  `json:"IOCs"`
	ThreatActor              string    `json:"Threat_Actor"`
	AttackVector             string    `json:"Attack_Vector"`
	Geography                string    `json:"Geography"`
	Sentiment                float64   `json:"Sentiment"`
	SeverityScore            int       `json:"Severity_Score"`
	PredictedThreat          string    `json:"Predicted_Threat"`
	SuggestedAction          string    `json:"Suggested_Action"`
	RiskLevel                int       `json:"Risk_Level"`
	CleanedThreatDescription string    `json:"Cleaned_Threat_Description"`
	Keywords                 []string  `json:"Keywords"`
	NamedEntities            []string  `json:"Named_Entities"`
	TopicModel               string    `json:"Topic_Model"`
	WordCount                int       `json:"Word_Count"`
	CreatedAt                time.Time `json:"createdAt"`
}

// ListFilter narrows and pages a threat listing
type ListFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Page is one page of a threat listing
type Page struct {
	Threats    []Threat `json:"threats"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}

// Count wraps a group count
type Count struct {
	All int `json:"_all"`
}

type CategoryCount struct {
	ThreatCategory string `json:"Threat_Category"`
	Count          Count  `json:"_count"`
}

type SeverityCount struct {
	SeverityScore int   `json:"Severity_Score"`
	Count         Count `json:"_count"`
}

// Stats summarizes all threats
type Stats struct {
	Total      int             `json:"total"`
	ByCategory []CategoryCount `json:"byCategory"`
	BySeverity []SeverityCount `json:"bySeverity"`
}
