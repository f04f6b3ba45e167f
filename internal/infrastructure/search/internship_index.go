package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// InternshipIndex keeps a searchable copy of postings in Elasticsearch.
type InternshipIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewInternshipIndex(es *elasticsearch.Client, index string) *InternshipIndex {
	return &InternshipIndex{ES: es, IndexName: index}
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "recruiter_id": {"type": "keyword"},
      "title":        {"type": "text"},
      "company":      {"type": "text"},
      "location":     {"type": "text"},
      "skills":       {"type": "text"},
      "type":         {"type": "keyword"},
      "status":       {"type": "keyword"},
      "updated_on":   {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping unless it already exists.
func (x *InternshipIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	exists, err := esapi.IndicesExistsRequest{Index: []string{x.IndexName}}.Do(c, x.ES)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}
	res, err := esapi.IndicesCreateRequest{Index: x.IndexName, Body: strings.NewReader(indexMapping)}.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// a concurrent creator may have won; 400 resource_already_exists is fine
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}

type internshipDoc struct {
	ID          string   `json:"id"`
	RecruiterID string   `json:"recruiter_id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	UpdatedOn   string   `json:"updated_on"`
}

func toDoc(i *entity.Internship) internshipDoc {
	return internshipDoc{
		ID:          i.ID,
		RecruiterID: i.RecruiterID,
		Title:       i.Title,
		Company:     i.Company,
		Location:    i.Location,
		Skills:      i.SkillsAndQualifications,
		Type:        i.InternshipType.Type,
		Status:      string(i.Status),
		UpdatedOn:   i.UpdatedOn.Format(time.RFC3339Nano),
	}
}

func (x *InternshipIndex) Index(ctx context.Context, i *entity.Internship) error {
	b, err := json.Marshal(toDoc(i))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: i.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *InternshipIndex) Delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over title, company, location and skills and
// returns the matching ids.
func (x *InternshipIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"title^3", "company^2", "location", "skills"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": string(entity.InternshipActive)},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}
