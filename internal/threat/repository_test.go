package threat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatlens/threatlens-api/internal/database"
)

func fixtureThreats() []Threat {
	return []Threat{
		{
			ThreatCategory:           "Malware",
			IOCs:                     []string{"hash1", "hash2"},
			ThreatActor:              "Actor1",
			AttackVector:             "Email",
			Geography:                "US",
			Sentiment:                0.8,
			SeverityScore:            8,
			PredictedThreat:          "High",
			SuggestedAction:          "Block",
			RiskLevel:                7,
			CleanedThreatDescription: "Test threat 1",
			Keywords:                 []string{"malware", "email"},
			NamedEntities:            []string{"Actor1"},
			TopicModel:               "Malware",
			WordCount:                10,
		},
		{
			ThreatCategory:           "Phishing",
			IOCs:                     []string{"hash3"},
			ThreatActor:              "Actor2",
			AttackVector:             "Web",
			Geography:                "EU",
			Sentiment:                0.6,
			SeverityScore:            6,
			PredictedThreat:          "Medium",
			SuggestedAction:          "Monitor",
			RiskLevel:                5,
			CleanedThreatDescription: "Test threat 2",
			Keywords:                 []string{"phishing", "web"},
			NamedEntities:            []string{"Actor2"},
			TopicModel:               "Phishing",
			WordCount:                8,
		},
		{
			ThreatCategory:           "Malware",
			SeverityScore:            8,
			CleanedThreatDescription: "Ransomware 100% encrypted_files",
		},
	}
}

func newTestRepository(t *testing.T) (*Repository, []Threat) {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	repo := NewRepository(db)
	threats := fixtureThreats()
	require.NoError(t, repo.CreateMany(ctx, threats))
	return repo, threats
}

func TestRepository_CreateManyAssignsIDs(t *testing.T) {
	_, threats := newTestRepository(t)

	seen := map[int64]bool{}
	for _, th := range threats {
		assert.NotZero(t, th.ID)
		assert.False(t, seen[th.ID])
		seen[th.ID] = true
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, threats := newTestRepository(t)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, threats[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Malware", got.ThreatCategory)
	assert.Equal(t, []string{"hash1", "hash2"}, got.IOCs)
	assert.Equal(t, []string{"malware", "email"}, got.Keywords)
	assert.InDelta(t, 0.8, got.Sentiment, 1e-9)

	empty, err := repo.GetByID(ctx, threats[2].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty.IOCs)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter ListFilter
		total  int
		descs  []string
	}{
		{"all", ListFilter{Page: 1, Limit: 10}, 3, []string{"Test threat 1", "Test threat 2", "Ransomware 100% encrypted_files"}},
		{"category", ListFilter{Category: "Malware", Page: 1, Limit: 10}, 2, []string{"Test threat 1", "Ransomware 100% encrypted_files"}},
		{"category is exact", ListFilter{Category: "malware", Page: 1, Limit: 10}, 0, nil},
		{"search", ListFilter{Search: "Test threat 1", Page: 1, Limit: 10}, 1, []string{"Test threat 1"}},
		{"search ignores case", ListFilter{Search: "TEST THREAT", Page: 1, Limit: 10}, 2, []string{"Test threat 1", "Test threat 2"}},
		{"search percent is literal", ListFilter{Search: "100%", Page: 1, Limit: 10}, 1, []string{"Ransomware 100% encrypted_files"}},
		{"search underscore is literal", ListFilter{Search: "d_f", Page: 1, Limit: 10}, 1, []string{"Ransomware 100% encrypted_files"}},
		{"combined", ListFilter{Category: "Phishing", Search: "threat 1", Page: 1, Limit: 10}, 0, nil},
		{"second page", ListFilter{Page: 2, Limit: 2}, 3, []string{"Ransomware 100% encrypted_files"}},
		{"past the end", ListFilter{Page: 5, Limit: 2}, 3, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			threats, total, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.total, total)

			var descs []string
			for _, th := range threats {
				descs = append(descs, th.CleanedThreatDescription)
			}
			assert.Equal(t, tc.descs, descs)
		})
	}
}

func TestRepository_Stats(t *testing.T) {
	repo, _ := newTestRepository(t)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, []CategoryCount{
		{ThreatCategory: "Malware", Count: Count{All: 2}},
		{ThreatCategory: "Phishing", Count: Count{All: 1}},
	}, stats.ByCategory)
	assert.Equal(t, []SeverityCount{
		{SeverityScore: 6, Count: Count{All: 1}},
		{SeverityScore: 8, Count: Count{All: 2}},
	}, stats.BySeverity)
}

func TestRepository_Categories(t *testing.T) {
	repo, _ := newTestRepository(t)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Malware", "Phishing"}, categories)
}

func TestRepository_EmptyTable(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db))
	repo := NewRepository(db)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByCategory)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, categories)

	assert.NoError(t, repo.CreateMany(ctx, nil))
}
