package model

import (
	"fmt"
	"strings"
	"time"
)

// Front-matter keys recognized when assembling a post.
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldCategories      = "categories"
	FieldPublicationDate = "publicationDate"
	FieldImage           = "image"
	FieldLastModified    = "lastModifiedDate"
)

// requiredFields must all be present and non-empty in a post document.
var requiredFields = []string{FieldTitle, FieldDescription, FieldCategories, FieldPublicationDate}

// dateLayouts lists the accepted date formats, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Post is one blog entry assembled from a stored document. The slug is fixed
// at fetch time from the storage path and never recomputed; a Post is built
// fresh on every fetch and not mutated afterwards.
type Post struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Slug             string     `json:"slug"`
	Categories       []string   `json:"categories"`
	Content          string     `json:"content"`
	Image            string     `json:"image,omitempty"`
	PublicationDate  time.Time  `json:"publicationDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
}

// MissingFieldError reports a required metadata key absent (or empty) in a
// post document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required metadata field %q", e.Field)
}

// NewPost builds a Post from flat front-matter metadata and the document body.
func NewPost(slug string, meta map[string]string, content string) (*Post, error) {
	for _, field := range requiredFields {
		if meta[field] == "" {
			return nil, &MissingFieldError{Field: field}
		}
	}

	published, err := ParseDate(meta[FieldPublicationDate])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", FieldPublicationDate, err)
	}

	post := &Post{
		Title:           meta[FieldTitle],
		Description:     meta[FieldDescription],
		Slug:            slug,
		Categories:      SplitCategories(meta[FieldCategories]),
		Content:         content,
		Image:           meta[FieldImage],
		PublicationDate: published,
	}

	if raw := meta[FieldLastModified]; raw != "" {
		modified, err := ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", FieldLastModified, err)
		}
		post.LastModifiedDate = &modified
	}

	return post, nil
}

// SplitCategories splits the semicolon-joined categories field, preserving
// order. A single category without a separator yields one element.
func SplitCategories(raw string) []string {
	return strings.Split(raw, ";")
}

// ParseDate parses a metadata date trying each accepted layout.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", raw)
}

// PostListResponse is the catalog listing payload.
type PostListResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}
