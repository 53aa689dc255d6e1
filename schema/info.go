package schema

import "time"

// Option is a taxonomy entry as the client sees it. A missing ident means
// "create or match by value" on update.
type Option struct {
	Ident *uint  `json:"ident"`
	Value string `json:"value"`
}

type UserOption struct {
	Ident *uint  `json:"ident"`
	Value string `json:"value"`
	IsBot bool   `json:"is_bot"`
}

type MediumOption struct {
	Ident   *uint    `json:"ident"`
	Value   string   `json:"value"`
	Sources []Option `json:"sources"`
}

// Link is the fully expanded response shape: ids plus display names for
// every reference, for UI convenience.
type Link struct {
	ID           uint      `json:"id"`
	TargetURL    string    `json:"target_url"`
	CampaignDate time.Time `json:"campaign_date"`
	CampaignDop  string    `json:"campaign_dop"`
	FullURL      string    `json:"full_url"`

	TermMaterialID   uint   `json:"term_material_id"`
	TermMaterialName string `json:"term_material_name"`

	TermPageID   uint   `json:"term_page_id"`
	TermPageName string `json:"term_page_name"`

	MediumID   uint   `json:"medium_id"`
	MediumName string `json:"medium_name"`

	SourceID   uint   `json:"source_id"`
	SourceName string `json:"source_name"`

	CampaignProjectID   uint   `json:"campaign_project_id"`
	CampaignProjectName string `json:"campaign_project_name"`

	ContentID   uint   `json:"content_id"`
	ContentName string `json:"content_name"`

	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
}

// Info is the full taxonomy snapshot plus the most recent links. The same
// shape is used for both the read and the bulk-update endpoint.
type Info struct {
	Users            []UserOption   `json:"users"`
	TermMaterials    []Option       `json:"term_materials"`
	TermPages        []Option       `json:"term_pages"`
	Mediums          []MediumOption `json:"mediums"`
	CampaignProjects []Option       `json:"campaign_projects"`
	Contents         []Option       `json:"contents"`
	LastLinks        []Link         `json:"last_links"`
}

// LinkCreate is the request for minting a single tracked link. Every ref
// accepts an id or a name.
type LinkCreate struct {
	TargetURL       string `json:"target_url"`
	TermMaterial    Ref    `json:"term_material"`
	TermPage        Ref    `json:"term_page"`
	Medium          Ref    `json:"medium"`
	Source          Ref    `json:"source"`
	CampaignProject Ref    `json:"campaign_project"`
	Content         Ref    `json:"content"`
	User            Ref    `json:"user"`
	CampaignDop     string `json:"campaign_dop"`
}
