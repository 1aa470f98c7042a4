// Package openlibrary looks books up by ISBN through the Open Library books API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Lookup is the normalised result of an ISBN search. Found is false when
// Open Library has no record for the ISBN.
type Lookup struct {
	Found        bool    `json:"found"`
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	Publisher    *string `json:"publisher"`
	PublishDate  *string `json:"publish_date"`
	Genre        *string `json:"genre"`
	ISBN10       *string `json:"isbn_10"`
	ISBN13       *string `json:"isbn_13"`
	CoverURL     *string `json:"cover_url"`
	Description  *string `json:"description"`
	PageCount    *int    `json:"page_count"`
	SeriesTitle  *string `json:"series_title"`
	VolumeNumber *int    `json:"volume_number"`
	VolumeTitle  *string `json:"volume_title"`
	TotalVolumes *int    `json:"total_volumes"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type named struct {
	Name string `json:"name"`
}

type bookRecord struct {
	Title         string              `json:"title"`
	Subtitle      string              `json:"subtitle"`
	Notes         json.RawMessage     `json:"notes"`
	Authors       []named             `json:"authors"`
	Publishers    []named             `json:"publishers"`
	PublishDate   string              `json:"publish_date"`
	Subjects      []named             `json:"subjects"`
	Identifiers   map[string][]string `json:"identifiers"`
	Cover         map[string]string   `json:"cover"`
	NumberOfPages *int                `json:"number_of_pages"`
	TOC           []struct {
		Title string `json:"title"`
	} `json:"table_of_contents"`
}

// LookupISBN fetches and normalises the record for isbn. Transport failures
// and non-2xx answers are returned as errors.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*Lookup, error) {
	q := url.Values{}
	q.Set("bibkeys", "ISBN:"+isbn)
	q.Set("format", "json")
	q.Set("jscmd", "data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/books?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openlibrary status %d", resp.StatusCode)
	}

	var payload map[string]bookRecord
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openlibrary decode: %w", err)
	}

	rec, ok := payload["ISBN:"+isbn]
	if !ok {
		return &Lookup{Found: false}, nil
	}
	return normalise(isbn, rec), nil
}

func normalise(isbn string, rec bookRecord) *Lookup {
	out := &Lookup{
		Found:       true,
		Title:       nonEmpty(rec.Title),
		Author:      nonEmpty(joinNames(rec.Authors)),
		Publisher:   nonEmpty(joinNames(rec.Publishers)),
		PublishDate: nonEmpty(rec.PublishDate),
		Genre:       pickGenre(rec.Subjects),
		ISBN10:      first(rec.Identifiers["isbn_10"]),
		ISBN13:      first(rec.Identifiers["isbn_13"]),
		CoverURL:    coverURL(isbn, rec.Cover),
		Description: description(rec),
		PageCount:   rec.NumberOfPages,
	}

	entries := make([]string, 0, len(rec.TOC))
	for _, e := range rec.TOC {
		entries = append(entries, e.Title)
	}
	isbns := rec.Identifiers["isbn_13"]
	if len(isbns) == 0 {
		isbns = rec.Identifiers["isbn_10"]
	}
	if vol, ok := DetectVolume(isbn, rec.Title, entries, isbns); ok {
		out.SeriesTitle = nonEmpty(vol.SeriesTitle)
		out.VolumeNumber = &vol.Number
		out.VolumeTitle = nonEmpty(vol.Title)
		out.TotalVolumes = &vol.Total
	}
	return out
}

var genreKeywords = []string{
	"fiction", "literature", "mystery", "romance", "science fiction",
	"fantasy", "thriller", "horror", "biography", "history",
}

func pickGenre(subjects []named) *string {
	for _, s := range subjects {
		lower := strings.ToLower(s.Name)
		for _, kw := range genreKeywords {
			if strings.Contains(lower, kw) {
				return nonEmpty(s.Name)
			}
		}
	}
	if len(subjects) > 0 {
		return nonEmpty(subjects[0].Name)
	}
	return nil
}

func coverURL(isbn string, cover map[string]string) *string {
	for _, size := range []string{"large", "medium", "small"} {
		if u := cover[size]; u != "" {
			return &u
		}
	}
	u := fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", isbn)
	return &u
}

// description prefers notes, which arrive either as a string or as {"value": ...}.
func description(rec bookRecord) *string {
	if len(rec.Notes) > 0 {
		var s string
		if err := json.Unmarshal(rec.Notes, &s); err == nil && s != "" {
			return &s
		}
		var obj struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(rec.Notes, &obj); err == nil && obj.Value != "" {
			return &obj.Value
		}
	}
	return nonEmpty(rec.Subtitle)
}

func joinNames(items []named) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}
	return strings.Join(names, ", ")
}

func first(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
