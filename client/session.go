package client

import (
	"context"
	"net/http"
)

// Session is the client-side authentication state: the token and current
// user, attached to every outgoing request. It is an explicit object handed
// to the components that need it, not process-wide state.
type Session struct {
	client *Client
	Token  string
	User   User
}

// Me revalidates the token against the server and refreshes the user.
func (s *Session) Me(ctx context.Context) (User, error) {
	var u User
	if err := s.client.do(ctx, http.MethodGet, "/api/users/me", s.Token, nil, &u); err != nil {
		return User{}, err
	}
	s.User = u
	return u, nil
}

// Documents lists the user's documents, most recently saved first.
func (s *Session) Documents(ctx context.Context) ([]Summary, error) {
	var docs []Summary
	if err := s.client.do(ctx, http.MethodGet, "/api/documents", s.Token, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Document fetches one document by id.
func (s *Session) Document(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.client.do(ctx, http.MethodGet, "/api/documents/"+id, s.Token, nil, &doc)
	return doc, err
}

// CreateDocument creates a document; empty title and content fall back to
// the server defaults.
func (s *Session) CreateDocument(ctx context.Context, title, content string) (Document, error) {
	body := map[string]string{}
	if title != "" {
		body["title"] = title
	}
	if content != "" {
		body["content"] = content
	}
	var doc Document
	err := s.client.do(ctx, http.MethodPost, "/api/documents", s.Token, body, &doc)
	return doc, err
}

// UpdateDocument sends a partial update and returns the saved record.
func (s *Session) UpdateDocument(ctx context.Context, id string, patch DocumentPatch) (Document, error) {
	var doc Document
	err := s.client.do(ctx, http.MethodPut, "/api/documents/"+id, s.Token, patch, &doc)
	return doc, err
}

// DeleteDocument permanently removes a document.
func (s *Session) DeleteDocument(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/documents/"+id, s.Token, nil, nil)
}
