package model

// TopPost is one row of the curated top-posts manifest. The manifest keeps
// categories semicolon-joined and the date as the raw string; it is a
// different shape from Post and callers must not assume parity.
type TopPost struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Categories      string `json:"categories"`
	PublicationDate string `json:"publicationDate"`
}

// Project is one row of the projects manifest.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url,omitempty"`
	Repository   string   `json:"repository,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Image        string   `json:"image,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
}
