package schema

// UTMInfo is the request for preset-driven minting: one url is produced
// per content variant configured for the source category.
type UTMInfo struct {
	Link     string `json:"link"`
	Source   string `json:"source"`
	Project  string `json:"project"`
	ItemType string `json:"item_type"`
}

type UTM struct {
	Desc      string `json:"desc"`
	Link      string `json:"link"`
	ShortLink string `json:"short_link"`
}

type UTMs struct {
	UTMs []UTM `json:"utms"`
}
