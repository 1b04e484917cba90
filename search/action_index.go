package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Itish41/asset-audit/models"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

const DefaultIndex = "corrective-actions"

var ErrDisabled = errors.New("elasticsearch client is not initialized")

// ActionIndex mirrors corrective actions into Elasticsearch for full-text
// lookup. A nil client turns writes into no-ops and searches into ErrDisabled.
type ActionIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *zap.Logger
}

func NewActionIndex(es *elasticsearch.Client, index string, logger *zap.Logger) *ActionIndex {
	if index == "" {
		index = DefaultIndex
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionIndex{es: es, index: index, logger: logger.Named("search")}
}

// NewClient builds an Elasticsearch client, or returns nil when url is empty.
func NewClient(url string) (*elasticsearch.Client, error) {
	if url == "" {
		return nil, nil
	}
	return elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
}

type actionDoc struct {
	ID           string     `json:"id"`
	AuditPlanID  string     `json:"audit_plan_id"`
	AuditAssetID string     `json:"audit_asset_id"`
	Issue        string     `json:"issue"`
	Action       string     `json:"action"`
	Notes        string     `json:"notes"`
	AssignedTo   string     `json:"assigned_to"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}

func (x *ActionIndex) Index(ctx context.Context, a models.CorrectiveAction) error {
	if x.es == nil {
		x.logger.Debug("elasticsearch client not initialized; skipping indexing")
		return nil
	}

	body, err := json.Marshal(actionDoc{
		ID:           a.ID,
		AuditPlanID:  a.AuditPlanID,
		AuditAssetID: a.AuditAssetID,
		Issue:        a.Issue,
		Action:       a.Action,
		Notes:        a.Notes,
		AssignedTo:   a.AssignedTo,
		Priority:     string(a.Priority),
		Status:       string(a.Status),
		DueDate:      a.DueDate,
		Timestamp:    a.UpdatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal action for indexing: %w", err)
	}

	res, err := x.es.Index(
		x.index,
		bytes.NewReader(body),
		x.es.Index.WithDocumentID(a.ID),
		x.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch indexing error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch indexing failed: %s", res.String())
	}
	return nil
}

func (x *ActionIndex) Delete(ctx context.Context, id string) error {
	if x.es == nil {
		return nil
	}
	res, err := x.es.Delete(x.index, id, x.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch delete error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch delete failed: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns the ids of matching actions in relevance order. An empty
// planID searches every plan.
func (x *ActionIndex) Search(ctx context.Context, planID, query string) ([]string, error) {
	if x.es == nil {
		return nil, ErrDisabled
	}

	boolQuery := map[string]interface{}{
		"must": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"issue^2", "action", "notes"},
			},
		},
	}
	if planID != "" {
		boolQuery["filter"] = map[string]interface{}{
			"term": map[string]interface{}{"audit_plan_id": planID},
		}
	}
	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"size":  100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
