package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/tucotrainer/pkg/entities"
)

const indexDateLayout = "2006-01"

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL             string
	Username        string
	Password        string
	IndexPrefix     string
	RetentionPeriod time.Duration // How long monthly indices are kept
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:             "http://localhost:9200",
		IndexPrefix:     "tucotrainer",
		RetentionPeriod: 90 * 24 * time.Hour,
	}
}

// ElasticsearchRepository wraps another Repository and additionally indexes
// every round and trainer answer into monthly Elasticsearch indices. Reads go
// to the wrapped repository.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	config   *ElasticsearchConfig
	now      func() time.Time

	mu      sync.Mutex
	created map[string]bool
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "tucotrainer"
	}
	if config.RetentionPeriod == 0 {
		config.RetentionPeriod = 90 * 24 * time.Hour
	}

	return &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		config:   config,
		now:      time.Now,
		created:  make(map[string]bool),
	}, nil
}

func (r *ElasticsearchRepository) indexName(kind string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s", r.config.IndexPrefix, kind, at.UTC().Format(indexDateLayout))
}

// ensureIndex creates the index with its mapping the first time it is used
func (r *ElasticsearchRepository) ensureIndex(ctx context.Context, name, mapping string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.created[name] {
		return nil
	}

	res, err := r.client.Indices.Exists([]string{name}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", name, err)
	}
	res.Body.Close()

	if res.StatusCode == 404 {
		req := esapi.IndicesCreateRequest{
			Index: name,
			Body:  strings.NewReader(mapping),
		}
		res, err := req.Do(ctx, r.client)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", name, err)
		}
		defer res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error creating index %s: %s", name, res.String())
		}
		log.Printf("Created Elasticsearch index %s", name)
	}

	r.created[name] = true
	return nil
}

func (r *ElasticsearchRepository) indexDocument(ctx context.Context, index, mapping, id string, doc any) error {
	if err := r.ensureIndex(ctx, index, mapping); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling document: %w", err)
	}

	res, err := r.client.Index(
		index,
		bytes.NewReader(body),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(id),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

// SaveRoundResult saves to the base repository, then indexes the round
func (r *ElasticsearchRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	if err := r.baseRepo.SaveRoundResult(ctx, result); err != nil {
		return fmt.Errorf("error saving round result to base repository: %w", err)
	}
	index := r.indexName("rounds", result.CompletedAt)
	return r.indexDocument(ctx, index, roundsMapping, result.ID, toESRoundResult(result))
}

// SaveTrainingAttempt saves to the base repository, then indexes the answer
func (r *ElasticsearchRepository) SaveTrainingAttempt(ctx context.Context, attempt *entities.TrainingAttempt) error {
	if err := r.baseRepo.SaveTrainingAttempt(ctx, attempt); err != nil {
		return fmt.Errorf("error saving training attempt to base repository: %w", err)
	}
	index := r.indexName("training", attempt.AnsweredAt)
	return r.indexDocument(ctx, index, trainingMapping, attempt.ID, toESTrainingAttempt(attempt))
}

// SearchPlayerRounds returns a player's most recent round documents straight
// from Elasticsearch
func (r *ElasticsearchRepository) SearchPlayerRounds(ctx context.Context, playerID string, limit int) ([]*ESRoundResult, error) {
	if limit <= 0 {
		limit = 20
	}

	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"player_id": playerID},
		},
		"sort": []any{
			map[string]any{"completed_at": map[string]any{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.config.IndexPrefix+"_rounds_*"),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching for player rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching for player rounds: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source ESRoundResult `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing player rounds: %w", err)
	}

	rounds := make([]*ESRoundResult, 0, len(result.Hits.Hits))
	for i := range result.Hits.Hits {
		rounds = append(rounds, &result.Hits.Hits[i].Source)
	}
	return rounds, nil
}

// GetIndices returns the names of the repository's indices
func (r *ElasticsearchRepository) GetIndices(ctx context.Context) ([]string, error) {
	res, err := r.client.Indices.Get(
		[]string{r.config.IndexPrefix + "_*"},
		r.client.Indices.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get indices: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error getting indices: %s", res.String())
	}

	var indices map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&indices); err != nil {
		return nil, fmt.Errorf("error parsing indices response: %w", err)
	}

	names := make([]string, 0, len(indices))
	for name := range indices {
		names = append(names, name)
	}
	return names, nil
}

// PruneOldIndices deletes monthly indices whose whole month lies before the
// retention cutoff and returns the deleted names
func (r *ElasticsearchRepository) PruneOldIndices(ctx context.Context) ([]string, error) {
	names, err := r.GetIndices(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := r.now().Add(-r.config.RetentionPeriod)
	var deleted []string
	for _, name := range names {
		idx := strings.LastIndex(name, "_")
		if idx < 0 {
			continue
		}
		month, err := time.Parse(indexDateLayout, name[idx+1:])
		if err != nil {
			log.Printf("Skipping index %s: %v", name, err)
			continue
		}
		if !month.AddDate(0, 1, 0).Before(cutoff) {
			continue
		}

		res, err := r.client.Indices.Delete([]string{name}, r.client.Indices.Delete.WithContext(ctx))
		if err != nil {
			return deleted, fmt.Errorf("error deleting index %s: %w", name, err)
		}
		res.Body.Close()
		if res.IsError() {
			log.Printf("Error deleting index %s: %s", name, res.String())
			continue
		}

		r.mu.Lock()
		delete(r.created, name)
		r.mu.Unlock()

		log.Printf("Deleted index %s (older than retention period of %v)", name, r.config.RetentionPeriod)
		deleted = append(deleted, name)
	}
	return deleted, nil
}

// GetPlayerResults implements Repository
func (r *ElasticsearchRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetPlayerResults(ctx, playerID, limit)
}

// GetChannelResults implements Repository
func (r *ElasticsearchRepository) GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetChannelResults(ctx, channelID, limit)
}

// GetPlayerAttempts implements Repository
func (r *ElasticsearchRepository) GetPlayerAttempts(ctx context.Context, playerID string, limit int) ([]*entities.TrainingAttempt, error) {
	return r.baseRepo.GetPlayerAttempts(ctx, playerID, limit)
}

// GetPlayerStatistics implements Repository
func (r *ElasticsearchRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	return r.baseRepo.GetPlayerStatistics(ctx, playerID)
}

// GetAllPlayerStatistics implements Repository
func (r *ElasticsearchRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	return r.baseRepo.GetAllPlayerStatistics(ctx)
}

// PruneResultsPerPlayer implements Repository
func (r *ElasticsearchRepository) PruneResultsPerPlayer(ctx context.Context, keep int) (int, error) {
	return r.baseRepo.PruneResultsPerPlayer(ctx, keep)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
