package appwrite

import (
	"context"
	"fmt"
	"net/url"
)

// DatabasesService handles documents
type DatabasesService struct {
	client *Client
}

type createDocumentRequest struct {
	DocumentID  string      `json:"documentId"`
	Data        interface{} `json:"data"`
	Permissions []string    `json:"permissions,omitempty"`
}

func documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(databaseID), url.PathEscape(collectionID))
}

// CreateDocument creates a document with the given attributes and decodes the
// stored document into result
func (s *DatabasesService) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data, result interface{}) error {
	return s.client.post(ctx, documentsPath(databaseID, collectionID), createDocumentRequest{
		DocumentID: documentID,
		Data:       data,
	}, result)
}

// ListDocuments lists documents matching queries (built with Equal, Search,
// OrderDesc, Limit...) and decodes the listing into result
func (s *DatabasesService) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string, result interface{}) error {
	params := url.Values{}
	for _, q := range queries {
		params.Add("queries[]", q)
	}
	return s.client.get(ctx, documentsPath(databaseID, collectionID), params, result)
}
