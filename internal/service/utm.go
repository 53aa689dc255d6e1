package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/emrgen/linkdealer/internal/config"
	"github.com/emrgen/linkdealer/schema"
	"github.com/sirupsen/logrus"
)

// Shortener turns a long url into a short one. The call is best effort;
// callers must tolerate failures.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

var itemTypes = map[string]bool{
	"premium": true,
	"freebie": true,
	"plus":    true,
}

// NewUTMService creates a new UTMService.
func NewUTMService(cnf *config.Config, shortener Shortener) *UTMService {
	return &UTMService{
		cnf:       cnf,
		shortener: shortener,
		now:       time.Now,
	}
}

// UTMService mints one tagged url per configured content variant of a
// preset category. Nothing on this path touches the database.
type UTMService struct {
	cnf       *config.Config
	shortener Shortener
	now       func() time.Time
}

// MakeUTM validates the request against the configured presets and mints
// the variant urls. Short links are filled in best effort; a shortener
// failure leaves the short link empty.
func (s *UTMService) MakeUTM(ctx context.Context, req *schema.UTMInfo) (*schema.UTMs, error) {
	preset, ok := s.cnf.UTMCategories[req.Source]
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown utm category %q", req.Source)}
	}

	if !itemTypes[req.ItemType] {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown item_type %q", req.ItemType)}
	}

	u, err := url.Parse(req.Link)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid link %q: %v", req.Link, err)}
	}

	// the item category is the second-to-last path segment (the slug of
	// a trailing-slash url), hyphens stripped, e.g.
	// /shop/summer-sale/ -> summersale
	parts := strings.Split(u.Path, "/")
	if len(parts) < 2 {
		return nil, &ValidationError{Reason: fmt.Sprintf("link %q has no category segment", req.Link)}
	}
	category := strings.ReplaceAll(parts[len(parts)-2], "-", "")

	term := fmt.Sprintf("%s-item-%s", req.ItemType, category)
	campaign := campaignTag(req.Project, s.now().UTC())

	result := &schema.UTMs{UTMs: make([]schema.UTM, 0, len(preset.Content))}
	for _, variant := range preset.Content {
		target := req.Link
		content := variant

		switch variant {
		case "to_subscription":
			target = s.cnf.SubscriptionURL
			content = "text"
		case "to_main":
			target = s.cnf.MainURL
			content = "text"
		}

		link, err := tagURL(target, utmTags{
			source:   preset.Source,
			medium:   preset.Medium,
			campaign: campaign,
			content:  content,
			term:     term,
		})
		if err != nil {
			return nil, err
		}

		result.UTMs = append(result.UTMs, schema.UTM{
			Desc:      variant,
			Link:      link,
			ShortLink: s.shorten(ctx, link),
		})
	}

	return result, nil
}

func (s *UTMService) shorten(ctx context.Context, link string) string {
	if s.shortener == nil {
		return ""
	}

	short, err := s.shortener.Shorten(ctx, link)
	if err != nil {
		logrus.Warnf("short link failed for %s: %v", link, err)
		return ""
	}

	return short
}
