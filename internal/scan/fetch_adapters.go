package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/mmcdole/gofeed"
	"github.com/soundbridge/opportunity-engine/internal/models"
)

// RSSAdapter treats a feed as a stream of candidate opportunities. It is the
// simplest real-fetch replacement for the templated adapter.
type RSSAdapter struct {
	src    Source
	parser *gofeed.Parser
}

func NewRSSAdapter(src Source) *RSSAdapter {
	parser := gofeed.NewParser()
	parser.UserAgent = "opportunity-engine/1.0"
	return &RSSAdapter{src: src, parser: parser}
}

func (a *RSSAdapter) Target() models.ScanTarget {
	return a.src.ScanTarget
}

func (a *RSSAdapter) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	feed, err := a.parser.ParseURLWithContext(a.src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s failed: %w", a.src.URL, err)
	}

	opps := make([]models.Opportunity, 0, len(feed.Items))
	for _, item := range feed.Items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		opps = append(opps, models.Opportunity{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Tags:        strings.ToLower(strings.Join(item.Categories, ",")),
			CategoryID:  CategoryID(a.src.Category),
		})
	}

	return opps, nil
}

// HTMLAdapter scrapes a listing page using the selectors configured on the
// registry entry. Kept outside the core test surface; templated sources are
// the default.
type HTMLAdapter struct {
	src Source
}

func NewHTMLAdapter(src Source) *HTMLAdapter {
	return &HTMLAdapter{src: src}
}

func (a *HTMLAdapter) Target() models.ScanTarget {
	return a.src.ScanTarget
}

func (a *HTMLAdapter) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	sel := a.src.Selectors
	if sel.Item == "" || sel.Title == "" {
		return nil, fmt.Errorf("html source %s missing selectors", a.src.Name)
	}

	collector := colly.NewCollector(
		colly.UserAgent("opportunity-engine/1.0"),
		colly.MaxDepth(1),
	)
	collector.SetRequestTimeout(20 * time.Second)

	var opps []models.Opportunity
	var fetchErr error

	collector.OnHTML(sel.Item, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText(sel.Title))
		if title == "" {
			return
		}
		link := a.src.URL
		if sel.Link != "" {
			if href := e.ChildAttr(sel.Link, "href"); href != "" {
				link = e.Request.AbsoluteURL(href)
			}
		}
		description := ""
		if sel.Description != "" {
			description = strings.TrimSpace(e.ChildText(sel.Description))
		}
		opps = append(opps, models.Opportunity{
			Title:       title,
			Description: description,
			URL:         link,
			CategoryID:  CategoryID(a.src.Category),
		})
	})

	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := collector.Visit(a.src.URL); err != nil {
		return nil, fmt.Errorf("html fetch %s failed: %w", a.src.URL, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("html fetch %s failed: %w", a.src.URL, fetchErr)
	}

	return opps, nil
}
