package threat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/threatlens/threatlens-api/internal/database"
)

var ErrNotFound = errors.New("threat not found")

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Repository handles threat data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns the threats matching filter, ordered by id. Category is an
// exact match; Search is a case-insensitive substring of the description.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Threat, int, error) {
	var rows []database.Threat

	q := r.db.NewSelect().Model(&rows)
	if filter.Category != "" {
		q = q.Where("t.threat_category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		q = q.Where("LOWER(t.cleaned_threat_description) LIKE ? ESCAPE '!'", pattern)
	}

	total, err := q.
		Order("t.id ASC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list threats: %w", err)
	}

	threats := make([]Threat, 0, len(rows))
	for i := range rows {
		threats = append(threats, mapDBThreatToModel(&rows[i]))
	}
	return threats, total, nil
}

// GetByID retrieves a threat by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*Threat, error) {
	row := new(database.Threat)
	err := r.db.NewSelect().
		Model(row).
		Where("t.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get threat: %w", err)
	}

	threat := mapDBThreatToModel(row)
	return &threat, nil
}

// Stats counts all threats, grouped by category and by severity
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	total, err := r.db.NewSelect().Model((*database.Threat)(nil)).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count threats: %w", err)
	}

	var categories []struct {
		ThreatCategory string `bun:"threat_category"`
		Count          int    `bun:"count"`
	}
	err = r.db.NewSelect().
		Model((*database.Threat)(nil)).
		Column("threat_category").
		ColumnExpr("COUNT(*) AS count").
		Group("threat_category").
		Order("threat_category ASC").
		Scan(ctx, &categories)
	if err != nil {
		return nil, fmt.Errorf("failed to group threats by category: %w", err)
	}

	var severities []struct {
		SeverityScore int `bun:"severity_score"`
		Count         int `bun:"count"`
	}
	err = r.db.NewSelect().
		Model((*database.Threat)(nil)).
		Column("severity_score").
		ColumnExpr("COUNT(*) AS count").
		Group("severity_score").
		Order("severity_score ASC").
		Scan(ctx, &severities)
	if err != nil {
		return nil, fmt.Errorf("failed to group threats by severity: %w", err)
	}

	stats := &Stats{
		Total:      total,
		ByCategory: make([]CategoryCount, 0, len(categories)),
		BySeverity: make([]SeverityCount, 0, len(severities)),
	}
	for _, c := range categories {
		stats.ByCategory = append(stats.ByCategory, CategoryCount{ThreatCategory: c.ThreatCategory, Count: Count{All: c.Count}})
	}
	for _, s := range severities {
		stats.BySeverity = append(stats.BySeverity, SeverityCount{SeverityScore: s.SeverityScore, Count: Count{All: s.Count}})
	}
	return stats, nil
}

// Categories returns the distinct categories in ascending order
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := r.db.NewSelect().
		Model((*database.Threat)(nil)).
		Distinct().
		Column("threat_category").
		Order("threat_category ASC").
		Scan(ctx, &categories)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateMany inserts threats in one statement and fills in their ids
func (r *Repository) CreateMany(ctx context.Context, threats []Threat) error {
	if len(threats) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]database.Threat, len(threats))
	for i := range threats {
		rows[i] = mapModelToDBThreat(&threats[i])
		rows[i].CreatedAt = now
	}

	if _, err := r.db.NewInsert().Model(&rows).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert threats: %w", err)
	}

	for i := range rows {
		threats[i].ID = rows[i].ID
		threats[i].CreatedAt = rows[i].CreatedAt
	}
	return nil
}

func mapDBThreatToModel(row *database.Threat) Threat {
	return Threat{
		ID:                       row.ID,
		ThreatCategory:           row.ThreatCategory,
		IOCs:                     nonNil(row.IOCs),
		ThreatActor:              row.ThreatActor,
		AttackVector:             row.AttackVector,
		Geography:                row.Geography,
		Sentiment:                row.Sentiment,
		SeverityScore:            row.SeverityScore,
		PredictedThreat:          row.PredictedThreat,
		SuggestedAction:          row.SuggestedAction,
		RiskLevel:                row.RiskLevel,
		CleanedThreatDescription: row.CleanedThreatDescription,
		Keywords:                 nonNil(row.Keywords),
		NamedEntities:            nonNil(row.NamedEntities),
		TopicModel:               row.TopicModel,
		WordCount:                row.WordCount,
		CreatedAt:                row.CreatedAt,
	}
}

func mapModelToDBThreat(t *Threat) database.Threat {
	return database.Threat{
		ThreatCategory:           t.ThreatCategory,
		IOCs:                     nonNil(t.IOCs),
		ThreatActor:              t.ThreatActor,
		AttackVector:             t.AttackVector,
		Geography:                t.Geography,
		Sentiment:                t.Sentiment,
		SeverityScore:            t.SeverityScore,
		PredictedThreat:          t.PredictedThreat,
		SuggestedAction:          t.SuggestedAction,
		RiskLevel:                t.RiskLevel,
		CleanedThreatDescription: t.CleanedThreatDescription,
		Keywords:                 nonNil(t.Keywords),
		NamedEntities:            nonNil(t.NamedEntities),
		TopicModel:               t.TopicModel,
		WordCount:                t.WordCount,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
