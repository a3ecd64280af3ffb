package model

import "time"

// Document is the persisted markdown document. OwnerID is fixed at creation;
// every successful mutation refreshes LastSaved.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"ownerId"`
	LastSaved time.Time `json:"lastSaved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the list-view projection: no full content, just a snippet.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	LastSaved time.Time `json:"lastSaved"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateRequest uses pointers so an omitted field is distinguishable from an
// explicit empty string; omitted fields keep their prior value.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
