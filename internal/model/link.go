package model

import "time"

// Link is the generated artifact: the original target url, the url with
// the utm query appended and the resolved taxonomy references at creation
// time. Rows are immutable once written.
type Link struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TargetURL    string    `gorm:"not null" json:"target_url"`
	FullURL      string    `gorm:"not null" json:"full_url"`
	CampaignDate time.Time `gorm:"not null;index" json:"campaign_date"`
	CampaignDop  string    `gorm:"not null;default:0" json:"campaign_dop"`

	TermMaterialID uint         `gorm:"not null" json:"term_material_id"`
	TermMaterial   TermMaterial `json:"term_material"`

	TermPageID uint     `gorm:"not null" json:"term_page_id"`
	TermPage   TermPage `json:"term_page"`

	MediumID uint   `gorm:"not null" json:"medium_id"`
	Medium   Medium `json:"medium"`

	SourceID uint   `gorm:"not null" json:"source_id"`
	Source   Source `json:"source"`

	CampaignProjectID uint            `gorm:"not null" json:"campaign_project_id"`
	CampaignProject   CampaignProject `json:"campaign_project"`

	ContentID uint    `gorm:"not null" json:"content_id"`
	Content   Content `json:"content"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `json:"user"`
}

func (Link) TableName() string {
	return "links"
}
