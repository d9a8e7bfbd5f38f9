package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"library-lending/internal/domain/book"
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maximum response body read from the catalog
const maxBodyBytes = 1 << 20

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Categories    []string `json:"categories"`
	Language      string   `json:"language"`
	ImageLinks    struct {
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	} `json:"imageLinks"`
}

// GoogleBooksClient looks books up through the Google Books volumes API.
type GoogleBooksClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewGoogleBooksClient(cfg config.CatalogConfig) *GoogleBooksClient {
	return &GoogleBooksClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

var _ shared.CatalogLookup = (*GoogleBooksClient)(nil)

func (c *GoogleBooksClient) LookupByISBN(ctx context.Context, isbn book.ISBN) (*shared.CatalogEntry, error) {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn.String())
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+q.Encode(), nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "catalog lookup failed"), errs.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Mark(errs.Newf("catalog returned status %d", resp.StatusCode), errs.ErrUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to read catalog response"), errs.ErrUnavailable)
	}

	var parsed volumesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "malformed catalog response"), errs.ErrUnavailable)
	}
	if parsed.TotalItems == 0 || len(parsed.Items) == 0 {
		return nil, shared.ErrCatalogNoMatch
	}

	return toEntry(parsed.Items[0].VolumeInfo), nil
}

func toEntry(v volumeInfo) *shared.CatalogEntry {
	title := v.Title
	if v.Subtitle != "" {
		title += ": " + v.Subtitle
	}
	cover := v.ImageLinks.Thumbnail
	if cover == "" {
		cover = v.ImageLinks.SmallThumbnail
	}
	year := v.PublishedDate
	if len(year) > 4 {
		year = year[:4]
	}
	return &shared.CatalogEntry{
		Title:      title,
		Authors:    v.Authors,
		Categories: v.Categories,
		Publisher:  v.Publisher,
		Year:       year,
		Language:   v.Language,
		CoverURL:   strings.Replace(cover, "http://", "https://", 1),
	}
}
