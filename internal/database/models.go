package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted identity row
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Threat is an imported threat-intelligence record
type Threat struct {
	bun.BaseModel `bun:"table:threats,alias:t"`

	ID                       int64     `bun:"id,pk,autoincrement"`
	ThreatCategory           string    `bun:"threat_category,notnull"`
	IOCs                     []string  `bun:"iocs,type:jsonb"`
	ThreatActor              string    `bun:"threat_actor"`
	AttackVector             string    `bun:"attack_vector"`
	Geography                string    `bun:"geography"`
	Sentiment                float64   `bun:"sentiment"`
	SeverityScore            int       `bun:"severity_score"`
	PredictedThreat          string    `bun:"predicted_threat"`
	SuggestedAction          string    `bun:"suggested_action"`
	RiskLevel                int       `bun:"risk_level"`
	CleanedThreatDescription string    `bun:"cleaned_threat_description"`
	Keywords                 []string  `bun:"keywords,type:jsonb"`
	NamedEntities            []string  `bun:"named_entities,type:jsonb"`
	TopicModel               string    `bun:"topic_model"`
	WordCount                int       `bun:"word_count"`
	CreatedAt                time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
