package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"anoa.com/jelajahpath/internal/model"
	"github.com/meilisearch/meilisearch-go"
)

// PathSearchService keeps the Meilisearch path index in sync with the catalog
// and signs tenant tokens so the client can query it directly.
type PathSearchService interface {
	IndexPath(path *model.Path) error
	DeletePath(id string) error
	GenerateSearchToken() (string, error)
}

type pathSearchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
}

func NewPathSearchService(client meilisearch.ServiceManager) PathSearchService {
	s := &pathSearchService{client: client}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *pathSearchService) initIndexes() {
	filterableAttrs := []string{"is_published"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("paths").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update paths filterable attributes: %v", err)
	}

	sortableAttrs := []string{"distance_meters", "created_at"}
	_, err = s.client.Index("paths").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update paths sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

func (s *pathSearchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "TenantTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        "TenantTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{"paths"},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

type meiliPathDoc struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Locations      []string `json:"locations"`
	DistanceMeters float64  `json:"distance_meters"`
	IsPublished    bool     `json:"is_published"`
	CreatedAt      int64    `json:"created_at"`
}

func (s *pathSearchService) IndexPath(path *model.Path) error {
	locations := make([]string, 0, len(path.Points))
	for i := range path.Points {
		if l := path.Points[i].LocationLabel; l != nil && strings.TrimSpace(*l) != "" {
			locations = append(locations, *l)
		}
	}

	doc := meiliPathDoc{
		ID:             path.ID.String(),
		Name:           path.Name,
		Description:    getStringOrEmpty(path.Description),
		Locations:      locations,
		DistanceMeters: path.DistanceMeters,
		IsPublished:    path.IsPublished,
		CreatedAt:      path.CreatedAt.Unix(),
	}

	task, err := s.client.Index("paths").AddDocuments([]meiliPathDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed path %s, task id: %d", path.ID, task.TaskUID)
	return nil
}

func (s *pathSearchService) DeletePath(id string) error {
	_, err := s.client.Index("paths").DeleteDocument(id)
	return err
}

// GenerateSearchToken signs a tenant token limited to published paths.
func (s *pathSearchService) GenerateSearchToken() (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		"paths": map[string]any{
			"filter": "is_published = true",
		},
	}

	token, err := s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
