package service

import (
	"fmt"
	"net/url"
	"time"
)

// utmTags are the five parameters stamped onto every minted url.
type utmTags struct {
	source   string
	medium   string
	campaign string
	content  string
	term     string
}

// tagURL appends the utm parameters to target, preserving any query
// parameters already present (repeated values included) and the fragment.
// A utm parameter already on the url is overwritten.
func tagURL(target string, tags utmTags) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", &ValidationError{Reason: fmt.Sprintf("invalid target url %q: %v", target, err)}
	}

	q := u.Query()
	q.Set("utm_source", tags.source)
	q.Set("utm_medium", tags.medium)
	q.Set("utm_campaign", tags.campaign)
	q.Set("utm_content", tags.content)
	q.Set("utm_term", tags.term)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func campaignTag(project string, date time.Time) string {
	return fmt.Sprintf("%s-%s", project, date.Format("20060102"))
}

func termTag(material, page, dop string) string {
	if dop == "" {
		dop = "0"
	}
	return fmt.Sprintf("%s-%s-%s", material, page, dop)
}
