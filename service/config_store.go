package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kibanatools/kbackup/config"
	"github.com/kibanatools/kbackup/database"
	"github.com/kibanatools/kbackup/types"
)

// MaxHits bounds every search. The configuration index is assumed to hold
// fewer objects than this per type.
const MaxHits = 9999

// ConfigStore is a façade over the search backend holding Kibana
// configuration objects: dashboards, visualizations, saved searches and
// config documents. The backend handle is created lazily on first use and
// lives for the rest of the process.
type ConfigStore struct {
	cfg     config.ElasticsearchConfig
	backend database.SearchBackend
	logger  *zap.Logger
}

func NewConfigStore(cfg config.ElasticsearchConfig, logger *zap.Logger) *ConfigStore {
	return &ConfigStore{cfg: cfg, logger: logger}
}

// NewConfigStoreWithBackend wires an existing backend handle, for callers
// that manage the connection themselves.
func NewConfigStoreWithBackend(backend database.SearchBackend, index string, logger *zap.Logger) *ConfigStore {
	return &ConfigStore{
		cfg:     config.ElasticsearchConfig{Index: index},
		backend: backend,
		logger:  logger,
	}
}

// Host returns the configured backend address.
func (s *ConfigStore) Host() (string, int) {
	return s.cfg.Host, s.cfg.Port
}

// Connect establishes the backend connection if it is not already up.
func (s *ConfigStore) Connect() error {
	if s.backend != nil {
		return nil
	}
	backend, err := database.NewElasticStore(s.cfg)
	if err != nil {
		return err
	}
	s.backend = backend
	return nil
}

// PutDocument validates doc, makes sure its index exists and upserts it by
// (index, id, type). Last write wins; there is no concurrency check.
func (s *ConfigStore) PutDocument(ctx context.Context, doc types.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := s.Connect(); err != nil {
		return err
	}
	exists, err := s.backend.IndexExists(ctx, doc.Index)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.backend.CreateIndex(ctx, doc.Index); err != nil {
			return err
		}
	}
	s.logger.Info("putting document",
		zap.String("index", doc.Index),
		zap.String("type", doc.Type),
		zap.String("id", doc.ID))
	return s.backend.UpsertDocument(ctx, doc.Index, doc.ID, doc.Type, doc.Source)
}

// PutPackage indexes every document in pkg in order, stopping at the first
// failure. Documents already written stay written.
func (s *ConfigStore) PutPackage(ctx context.Context, pkg types.DocumentPackage) error {
	for _, doc := range pkg.Docs {
		if err := s.PutDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// PutDocuments indexes every document in set, stopping at the first
// failure.
func (s *ConfigStore) PutDocuments(ctx context.Context, set types.DocumentSet) error {
	for _, doc := range set {
		if err := s.PutDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// DeleteDocument removes doc by (index, id, type). Deleting a document the
// backend does not have surfaces the backend's not-found error.
func (s *ConfigStore) DeleteDocument(ctx context.Context, doc types.Document) error {
	if err := doc.ValidateMeta(); err != nil {
		return err
	}
	if err := s.Connect(); err != nil {
		return err
	}
	s.logger.Info("deleting document",
		zap.String("index", doc.Index),
		zap.String("type", doc.Type),
		zap.String("id", doc.ID))
	return s.backend.DeleteDocument(ctx, doc.Index, doc.ID, doc.Type)
}

// DeleteDocuments removes every document in set, stopping at the first
// failure.
func (s *ConfigStore) DeleteDocuments(ctx context.Context, set types.DocumentSet) error {
	for _, doc := range set {
		if err := s.DeleteDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// GetDocumentsByType returns every document whose type field equals
// typeName, at most MaxHits of them, keyed by id. The configured index
// name is recorded on each document so a later import can replay it as-is.
func (s *ConfigStore) GetDocumentsByType(ctx context.Context, typeName string) (types.DocumentSet, error) {
	if err := s.Connect(); err != nil {
		return nil, err
	}
	hits, err := s.backend.SearchByField(ctx, s.cfg.Index, "type", typeName, MaxHits)
	if err != nil {
		return nil, err
	}
	set := make(types.DocumentSet, len(hits))
	for _, hit := range hits {
		set[hit.ID] = types.Document{
			ID:     hit.ID,
			Index:  s.cfg.Index,
			Source: hit.Source,
			Type:   hit.Type,
		}
	}
	return set, nil
}

// GetConfigs collects the config documents. Index patterns are not
// included.
func (s *ConfigStore) GetConfigs(ctx context.Context) (types.DocumentSet, error) {
	return s.GetDocumentsByType(ctx, types.TypeConfig)
}

// GetDashboards collects all dashboards.
func (s *ConfigStore) GetDashboards(ctx context.Context) (types.DocumentSet, error) {
	return s.GetDocumentsByType(ctx, types.TypeDashboard)
}

// GetVisualizations collects all visualizations.
func (s *ConfigStore) GetVisualizations(ctx context.Context) (types.DocumentSet, error) {
	return s.GetDocumentsByType(ctx, types.TypeVisualization)
}

// GetSearches collects all saved searches.
func (s *ConfigStore) GetSearches(ctx context.Context) (types.DocumentSet, error) {
	return s.GetDocumentsByType(ctx, types.TypeSearch)
}

// GetDashboardClosure returns the dashboard with the given id together with
// every visualization and saved search its panel list references. An
// unknown id yields an empty set. A panel descriptor without an id aborts
// the whole export with a MalformedFileError and no partial result.
func (s *ConfigStore) GetDashboardClosure(ctx context.Context, dashboardID string) (types.DocumentSet, error) {
	dashboards, err := s.GetDashboards(ctx)
	if err != nil {
		return nil, err
	}
	visualizations, err := s.GetVisualizations(ctx)
	if err != nil {
		return nil, err
	}
	searches, err := s.GetSearches(ctx)
	if err != nil {
		return nil, err
	}

	closure := make(types.DocumentSet)
	dashboard, ok := dashboards[dashboardID]
	if !ok {
		return closure, nil
	}
	s.logger.Info("found dashboard", zap.String("id", dashboardID))
	closure[dashboardID] = dashboard

	panelIDs, err := parsePanels(dashboard)
	if err != nil {
		return types.DocumentSet{}, err
	}
	for _, panelID := range panelIDs {
		if vis, ok := visualizations[panelID]; ok {
			s.logger.Info("found visualization", zap.String("id", panelID))
			closure[panelID] = vis
		} else if search, ok := searches[panelID]; ok {
			s.logger.Info("found search", zap.String("id", panelID))
			closure[panelID] = search
		}
	}
	return closure, nil
}

// parsePanels extracts the referenced object ids from a dashboard's panel
// list. panelsJSON is a string field holding a JSON array of panel
// descriptors, each carrying the id of the visualization or saved search
// it displays.
func parsePanels(dashboard types.Document) ([]string, error) {
	raw, ok := dashboard.Source["panelsJSON"].(string)
	if !ok {
		return nil, &types.MalformedFileError{
			Reason: fmt.Sprintf("dashboard %s has no panelsJSON", dashboard.ID),
		}
	}
	var panels []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &panels); err != nil {
		return nil, &types.MalformedFileError{
			Reason: fmt.Sprintf("dashboard %s panelsJSON: %v", dashboard.ID, err),
		}
	}
	ids := make([]string, 0, len(panels))
	for _, panel := range panels {
		id, ok := panel["id"].(string)
		if !ok {
			return nil, &types.MalformedFileError{
				Reason: fmt.Sprintf("dashboard %s has a panel without an id", dashboard.ID),
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
