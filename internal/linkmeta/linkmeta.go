// Package linkmeta извлекает картинку и заголовок страницы по Open Graph / Twitter-тегам.
package linkmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	UserAgent      = "Mozilla/5.0 (compatible; GiftHuntBot/1.0)"
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 2 << 20
)

var (
	ErrInvalidURL = errors.New("url must be absolute http or https")
	ErrBadStatus  = errors.New("unexpected response status")
)

// Metadata — то, что удалось вытащить со страницы.
type Metadata struct {
	Image *string `json:"image"`
	Title *string `json:"title"`
}

// Fetcher загружает страницы и разбирает метаданные.
type Fetcher struct {
	client *http.Client
}

// NewFetcher создаёт Fetcher; nil-клиент заменяется клиентом с таймаутом по умолчанию.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch скачивает страницу и возвращает её картинку и заголовок.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	pageURL, err := parseHTTPURL(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	meta := Parse(io.LimitReader(resp.Body, maxBodyBytes))
	// относительные картинки резолвим от итогового адреса после редиректов
	base := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL
	}
	if meta.Image != nil {
		if ref, err := url.Parse(*meta.Image); err == nil {
			abs := base.ResolveReference(ref).String()
			meta.Image = &abs
		}
	}
	return meta, nil
}

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// Parse разбирает html-документ. og:* приоритетнее twitter:*, <title> идёт запасным заголовком.
func Parse(r io.Reader) *Metadata {
	var ogImage, twImage, ogTitle, twTitle, docTitle string
	inTitle := false

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return assemble(ogImage, twImage, ogTitle, twTitle, docTitle)
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "meta":
				key, content := metaPair(tok)
				if content == "" {
					continue
				}
				switch key {
				case "og:image", "og:image:url", "og:image:secure_url":
					if ogImage == "" {
						ogImage = content
					}
				case "twitter:image", "twitter:image:src":
					if twImage == "" {
						twImage = content
					}
				case "og:title":
					if ogTitle == "" {
						ogTitle = content
					}
				case "twitter:title":
					if twTitle == "" {
						twTitle = content
					}
				}
			case "title":
				inTitle = tt == html.StartTagToken
			}
		case html.TextToken:
			if inTitle && docTitle == "" {
				docTitle = strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = false
			}
			// метатеги живут в <head>, дальше читать незачем
			if string(name) == "head" && (ogImage != "" || twImage != "") && (ogTitle != "" || twTitle != "") {
				return assemble(ogImage, twImage, ogTitle, twTitle, docTitle)
			}
		}
	}
}

func metaPair(tok html.Token) (key, content string) {
	for _, a := range tok.Attr {
		switch strings.ToLower(a.Key) {
		case "property", "name":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(a.Val))
			}
		case "content":
			content = strings.TrimSpace(a.Val)
		}
	}
	return key, content
}

func assemble(ogImage, twImage, ogTitle, twTitle, docTitle string) *Metadata {
	m := &Metadata{
		Image: firstNonEmpty(ogImage, twImage),
		Title: firstNonEmpty(ogTitle, twTitle, docTitle),
	}
	return m
}

func firstNonEmpty(vals ...string) *string {
	for _, v := range vals {
		if v != "" {
			return &v
		}
	}
	return nil
}
