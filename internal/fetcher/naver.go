package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"stockwatch/internal/model"
)

const userAgent = "Mozilla/5.0"

// NaverSource scrapes price data from Naver Finance pages.
type NaverSource struct {
	Client  *http.Client
	BaseURL string // overridable for tests
}

// NewNaverSource creates a source with optional proxy support.
func NewNaverSource(proxyURL string) *NaverSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NaverSource{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://finance.naver.com",
	}
}

func (n *NaverSource) Name() string { return "naver" }

func (n *NaverSource) get(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	// Naver Finance serves EUC-KR.
	body := transform.NewReader(resp.Body, korean.EUCKR.NewDecoder())
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// FetchCurrent scrapes the current price and company name from the
// symbol's main quote page.
func (n *NaverSource) FetchCurrent(ctx context.Context, symbol string) (int, string, error) {
	pageURL := fmt.Sprintf("%s/item/main.naver?code=%s", n.BaseURL, url.QueryEscape(symbol))
	doc, err := n.get(ctx, pageURL)
	if err != nil {
		return 0, "", err
	}

	label := strings.TrimSpace(doc.Find(".wrap_company h2 a").First().Text())
	if label == "" {
		label = "Unknown"
	}

	priceText := strings.TrimSpace(doc.Find(".today .blind").First().Text())
	price, err := parsePrice(priceText)
	if err != nil {
		return 0, label, fmt.Errorf("%w: %q", ErrPriceUnavailable, priceText)
	}
	return price, label, nil
}

// FetchHistorical scrapes daily closing prices from the sise_day
// pages, roughly ten trading days per page. Samples come back
// ascending by date, one per day, timestamped at 00:00. A failing
// page stops paging and returns what was collected so far.
func (n *NaverSource) FetchHistorical(ctx context.Context, symbol string, pages int) (model.Series, error) {
	log.Printf("[INFO] historical fetch start: %s, %d pages", symbol, pages)

	byDate := make(map[string]model.Sample)
	for page := 1; page <= pages; page++ {
		pageURL := fmt.Sprintf("%s/item/sise_day.naver?code=%s&page=%d",
			n.BaseURL, url.QueryEscape(symbol), page)
		doc, err := n.get(ctx, pageURL)
		if err != nil {
			log.Printf("[WARN] historical page %d failed: %v", page, err)
			break
		}

		doc.Find("table.type2 tr").Each(func(_ int, row *goquery.Selection) {
			cols := row.Find("td")
			if cols.Length() < 2 {
				return
			}
			dateText := strings.TrimSpace(cols.Eq(0).Text())
			ts, err := time.ParseInLocation("2006.01.02", dateText, time.Local)
			if err != nil {
				return
			}
			price, err := parsePrice(strings.TrimSpace(cols.Eq(1).Text()))
			if err != nil {
				return
			}
			byDate[dateText] = model.Sample{Time: ts, Price: price}
		})
	}

	series := make(model.Series, 0, len(byDate))
	for _, sample := range byDate {
		series = append(series, sample)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })

	log.Printf("[INFO] historical fetch done: %d samples", len(series))
	return series, nil
}

func parsePrice(text string) (int, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	if cleaned == "" {
		return 0, ErrPriceUnavailable
	}
	price, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	if price <= 0 {
		return 0, ErrPriceUnavailable
	}
	return price, nil
}
