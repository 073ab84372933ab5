// Package neo4j keeps a patient-to-document graph so staff can pull up
// every filed document for a patient regardless of category folder.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

type Index struct {
	driver   neo4j.DriverWithContext
	database string
}

func New(uri, user, password, database string) (*Index, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	return &Index{driver: driver, database: database}, nil
}

func (i *Index) Close(ctx context.Context) error {
	return i.driver.Close(ctx)
}

// IndexDocument upserts the document node and, when a patient was
// extracted, links it to the patient node.
func (i *Index) IndexDocument(ctx context.Context, doc *domain.Document) error {
	params := map[string]any{
		"id":       doc.ID,
		"category": string(doc.Category),
		"folder":   doc.Folder,
		"filename": doc.Filename,
		"link":     doc.ShareLink,
		"filed_at": time.Now().UTC().Format(time.RFC3339),
	}

	query := `
MERGE (d:Document {id: $id})
SET d.category = $category, d.folder = $folder, d.filename = $filename, d.link = $link, d.filed_at = $filed_at`
	if doc.Fields.Patient != "" {
		params["patient"] = doc.Fields.Patient
		query += `
MERGE (p:Patient {name: $patient})
MERGE (p)-[:HAS_DOCUMENT]->(d)`
	}

	_, err := neo4j.ExecuteQuery(ctx, i.driver, query, params,
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(i.database))
	if err != nil {
		return fmt.Errorf("index document in graph: %w", err)
	}
	return nil
}

func (i *Index) SearchByPatient(ctx context.Context, patient string, limit int) ([]domain.FiledDocument, error) {
	const query = `
MATCH (p:Patient)-[:HAS_DOCUMENT]->(d:Document)
WHERE p.name CONTAINS $patient
RETURN d.id AS id, p.name AS patient, d.folder AS folder, d.filename AS filename, d.link AS link
ORDER BY d.filed_at DESC
LIMIT $limit`

	result, err := neo4j.ExecuteQuery(ctx, i.driver, query,
		map[string]any{"patient": patient, "limit": limit},
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(i.database))
	if err != nil {
		return nil, fmt.Errorf("search documents in graph: %w", err)
	}

	docs := make([]domain.FiledDocument, 0, len(result.Records))
	for _, record := range result.Records {
		docs = append(docs, domain.FiledDocument{
			ID:       stringValue(record, "id"),
			Patient:  stringValue(record, "patient"),
			Folder:   stringValue(record, "folder"),
			Filename: stringValue(record, "filename"),
			Link:     stringValue(record, "link"),
		})
	}
	return docs, nil
}

func stringValue(record *neo4j.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}
