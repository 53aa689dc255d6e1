package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/emrgen/linkdealer/internal/config"
	"github.com/emrgen/linkdealer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShortener struct {
	short string
	err   error
	calls int
}

func (s *stubShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	s.calls++
	return s.short, s.err
}

func utmConfig() *config.Config {
	return &config.Config{
		SubscriptionURL: "https://example.com/subscribe/",
		MainURL:         "https://example.com/",
		UTMCategories: map[string]config.UTMPreset{
			"vk": {
				Source:  "vksource",
				Medium:  "social",
				Content: []string{"post", "story", "to_subscription", "to_main"},
			},
		},
	}
}

func fixedNow(svc *UTMService) {
	svc.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
}

func TestUTMService_MakeUTM(t *testing.T) {
	short := &stubShortener{short: "https://bit.ly/abc"}
	svc := NewUTMService(utmConfig(), short)
	fixedNow(svc)

	out, err := svc.MakeUTM(context.TODO(), &schema.UTMInfo{
		Link:     "https://example.com/shop/summer-sale/",
		Source:   "vk",
		Project:  "spring",
		ItemType: "premium",
	})
	require.NoError(t, err)
	require.Len(t, out.UTMs, 4)
	assert.Equal(t, 4, short.calls)

	byDesc := map[string]schema.UTM{}
	for _, utm := range out.UTMs {
		byDesc[utm.Desc] = utm
	}

	post := byDesc["post"]
	u, err := url.Parse(post.Link)
	require.NoError(t, err)
	assert.Equal(t, "/shop/summer-sale/", u.Path)
	q := u.Query()
	assert.Equal(t, "vksource", q.Get("utm_source"))
	assert.Equal(t, "social", q.Get("utm_medium"))
	assert.Equal(t, "spring-20240301", q.Get("utm_campaign"))
	assert.Equal(t, "post", q.Get("utm_content"))
	assert.Equal(t, "premium-item-summersale", q.Get("utm_term"))
	assert.Equal(t, "https://bit.ly/abc", post.ShortLink)

	// redirect variants point at the configured urls with content "text"
	sub, err := url.Parse(byDesc["to_subscription"].Link)
	require.NoError(t, err)
	assert.Equal(t, "/subscribe/", sub.Path)
	assert.Equal(t, "text", sub.Query().Get("utm_content"))

	main, err := url.Parse(byDesc["to_main"].Link)
	require.NoError(t, err)
	assert.Equal(t, "/", main.Path)
	assert.Equal(t, "text", main.Query().Get("utm_content"))
	assert.Equal(t, "premium-item-summersale", main.Query().Get("utm_term"))
}

func TestUTMService_MakeUTMShortenerFailure(t *testing.T) {
	svc := NewUTMService(utmConfig(), &stubShortener{err: errors.New("quota")})
	fixedNow(svc)

	out, err := svc.MakeUTM(context.TODO(), &schema.UTMInfo{
		Link:     "https://example.com/shop/summer-sale/",
		Source:   "vk",
		Project:  "spring",
		ItemType: "plus",
	})
	require.NoError(t, err)
	for _, utm := range out.UTMs {
		assert.NotEmpty(t, utm.Link)
		assert.Empty(t, utm.ShortLink)
	}
}

func TestUTMService_MakeUTMNoShortener(t *testing.T) {
	svc := NewUTMService(utmConfig(), nil)
	fixedNow(svc)

	out, err := svc.MakeUTM(context.TODO(), &schema.UTMInfo{
		Link:     "https://example.com/shop/summer-sale/",
		Source:   "vk",
		Project:  "spring",
		ItemType: "freebie",
	})
	require.NoError(t, err)
	assert.Empty(t, out.UTMs[0].ShortLink)
}

func TestUTMService_MakeUTMValidation(t *testing.T) {
	svc := NewUTMService(utmConfig(), nil)
	fixedNow(svc)
	ctx := context.TODO()

	cases := []struct {
		name string
		req  *schema.UTMInfo
	}{
		{
			name: "unknown category",
			req:  &schema.UTMInfo{Link: "https://example.com/a/b/", Source: "tg", Project: "spring", ItemType: "premium"},
		},
		{
			name: "unknown item type",
			req:  &schema.UTMInfo{Link: "https://example.com/a/b/", Source: "vk", Project: "spring", ItemType: "gold"},
		},
		{
			name: "no category segment",
			req:  &schema.UTMInfo{Link: "https://example.com", Source: "vk", Project: "spring", ItemType: "premium"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.MakeUTM(ctx, tc.req)
			assert.Nil(t, out)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}
