package scientist

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultArxivURL is the public arXiv Atom query API.
const defaultArxivURL = "http://export.arxiv.org/api/query"

// Paper is one search hit from arXiv.
type Paper struct {
	Title   string
	Summary string
	Link    string
}

// arxivClient queries the arXiv Atom API.
type arxivClient struct {
	baseURL    string
	httpClient *http.Client
}

func newArxivClient(baseURL string, timeout time.Duration) *arxivClient {
	if baseURL == "" {
		baseURL = defaultArxivURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &arxivClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// atom feed structures, limited to the fields we render.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string     `xml:"title"`
	Summary string     `xml:"summary"`
	Links   []atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// Search returns up to maxResults papers matching the query.
func (c *arxivClient) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("invalid arxiv feed: %w", err)
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		paper := Paper{
			Title:   squash(entry.Title),
			Summary: squash(entry.Summary),
		}
		for _, link := range entry.Links {
			if link.Rel == "alternate" || paper.Link == "" {
				paper.Link = link.Href
			}
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

// squash collapses the whitespace arXiv wraps long fields with.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
