package database

import (
	"context"
	"encoding/json"
	"fmt"

	elastic "github.com/olivere/elastic/v7"

	"github.com/kibanatools/kbackup/config"
)

// ElasticStore implements SearchBackend against a single Elasticsearch
// endpoint. Sniffing and health checks are off: the tool talks to exactly
// the host it was given.
type ElasticStore struct {
	client *elastic.Client
}

func NewElasticStore(cfg config.ElasticsearchConfig) (*ElasticStore, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticStore{client: client}, nil
}

func (s *ElasticStore) IndexExists(ctx context.Context, index string) (bool, error) {
	return s.client.IndexExists(index).Do(ctx)
}

func (s *ElasticStore) CreateIndex(ctx context.Context, index string) error {
	_, err := s.client.CreateIndex(index).Do(ctx)
	if err != nil && (elastic.IsConflict(err) || elastic.IsStatusCode(err, 400)) {
		// Already exists, the write can proceed.
		return nil
	}
	return err
}

func (s *ElasticStore) UpsertDocument(ctx context.Context, index, id, docType string, body map[string]interface{}) error {
	_, err := s.client.Index().
		Index(index).
		Type(docType).
		Id(id).
		BodyJson(body).
		Do(ctx)
	return err
}

func (s *ElasticStore) DeleteDocument(ctx context.Context, index, id, docType string) error {
	_, err := s.client.Delete().
		Index(index).
		Type(docType).
		Id(id).
		Do(ctx)
	return err
}

func (s *ElasticStore) SearchByField(ctx context.Context, index, field, value string, limit int) ([]Hit, error) {
	res, err := s.client.Search().
		Index(index).
		Query(elastic.NewTermQuery(field, value)).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		var source map[string]interface{}
		if len(h.Source) > 0 {
			if err := json.Unmarshal(h.Source, &source); err != nil {
				return nil, fmt.Errorf("failed to decode hit %s: %w", h.Id, err)
			}
		}
		hits = append(hits, Hit{ID: h.Id, Type: h.Type, Source: source})
	}
	return hits, nil
}
