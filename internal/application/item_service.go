package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	repo "github.com/rewearhq/rewear-backend/internal/domain/repository"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
)

// ItemService handles listing creation, catalog projections and the
// administrator approval gate. Approved items are indexed into
// Elasticsearch on a best-effort basis for search.
type ItemService struct {
	Items  repo.ItemRepository
	GCS    *storage.Client
	Bucket string
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewItemService(items repo.ItemRepository, gcs *storage.Client, bucket string, es *elasticsearch.Client, index string, logger *logrus.Logger) *ItemService {
	return &ItemService{Items: items, GCS: gcs, Bucket: bucket, ES: es, Index: index, Logger: logger}
}

type CreateItemInput struct {
	Title       string
	Description string
	Category    string
	Type        string
	Size        string
	Condition   string
	Tags        []string
	Price       int64
}

// Create stores a new unapproved listing for the owner. The image, when
// present, is uploaded to the object store and referenced by URL.
func (s *ItemService) Create(ctx context.Context, ownerID string, in CreateItemInput, image io.Reader, filename, contentType string) (*entity.Item, error) {
	imageURL := ""
	if image != nil {
		url, err := s.uploadImage(ctx, ownerID, image, filename, contentType)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	it := &entity.Item{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Size:        in.Size,
		Condition:   in.Condition,
		Tags:        in.Tags,
		ImageURL:    imageURL,
		Price:       in.Price,
		Status:      entity.StatusAvailable,
		Approved:    false,
	}
	if err := s.Items.Create(ctx, it); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"item_id": it.ID, "owner_id": ownerID}).Info("item submitted for approval")
	return it, nil
}

// ListAvailable returns the public catalog: approved, still available,
// newest first.
func (s *ItemService) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	return s.Items.ListAvailable(ctx)
}

// ListByOwner returns the caller's own listings, any state.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	return s.Items.ListByOwner(ctx, ownerID)
}

// ListUnapproved returns the administrator review queue.
func (s *ItemService) ListUnapproved(ctx context.Context) ([]*entity.Item, error) {
	return s.Items.ListUnapproved(ctx)
}

// Get fetches a single item by id.
func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	return s.Items.GetByID(ctx, id)
}

// SetApproval flips the approval flag; setting the same value twice is a
// no-op success. Approval never touches balances. Newly approved items are
// indexed for search.
func (s *ItemService) SetApproval(ctx context.Context, id string, approved bool) (*entity.Item, error) {
	it, err := s.Items.SetApproval(ctx, id, approved)
	if err != nil {
		return nil, err
	}
	if approved {
		s.indexItem(ctx, it)
	}
	return it, nil
}

func (s *ItemService) uploadImage(ctx context.Context, ownerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return "", errors.New("object storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("items", ownerID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
}

func (s *ItemService) indexItem(ctx context.Context, it *entity.Item) {
	if s.ES == nil || s.Index == "" {
		return
	}
	doc := map[string]any{
		"id":          it.ID,
		"title":       it.Title,
		"description": it.Description,
		"category":    it.Category,
		"tags":        it.Tags,
		"price":       it.Price,
		"status":      it.Status,
		"created_at":  it.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.Index, DocumentID: it.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("item_id", it.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("item_id", it.ID).Warn("es index response error")
	}
}

// Search performs a multi_match query over approved items.
func (s *ItemService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.Index == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category", "tags"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.Index), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
