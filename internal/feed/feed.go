// Package feed builds RSS and Atom documents from the post catalog.
package feed

import (
	"fmt"

	"github.com/gorilla/feeds"

	"github.com/tizor98/albertonet-sub000/internal/config"
	"github.com/tizor98/albertonet-sub000/internal/model"
)

// Supported output formats.
const (
	FormatRSS  = "rss"
	FormatAtom = "atom"
)

// Generate renders the catalog as a syndication document. Posts are expected
// newest-first, as the catalog returns them.
func Generate(site config.SiteConfig, posts []model.Post, format string) (string, error) {
	f := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.URL},
		Description: site.Description,
		Author:      &feeds.Author{Name: site.Author},
	}
	if len(posts) > 0 {
		f.Created = posts[0].PublicationDate
	}

	for _, post := range posts {
		link := site.URL + "/blog/" + post.Slug
		item := &feeds.Item{
			Id:          link,
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: post.Description,
			Created:     post.PublicationDate,
		}
		if post.LastModifiedDate != nil {
			item.Updated = *post.LastModifiedDate
		}
		f.Items = append(f.Items, item)
	}

	switch format {
	case FormatRSS:
		out, err := f.ToRss()
		if err != nil {
			return "", fmt.Errorf("render rss: %w", err)
		}
		return out, nil
	case FormatAtom:
		out, err := f.ToAtom()
		if err != nil {
			return "", fmt.Errorf("render atom: %w", err)
		}
		return out, nil
	default:
		return "", fmt.Errorf("unsupported feed format %q", format)
	}
}

// ContentType returns the media type for a format's document.
func ContentType(format string) string {
	if format == FormatAtom {
		return "application/atom+xml; charset=utf-8"
	}
	return "application/rss+xml; charset=utf-8"
}
