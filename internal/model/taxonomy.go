package model

// The taxonomy tables share the same shape: an id, a display name and a
// manual weight used only for UI ordering. Names are unique per table so
// that upsert-by-name can rely on an insert-on-conflict instead of a racy
// find-then-insert.

type User struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	IsBot  bool   `gorm:"not null;default:false" json:"is_bot"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}

type TermMaterial struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}

type TermPage struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}

// Medium owns a set of sources. A link may only combine a medium with one
// of its attached sources.
type Medium struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"uniqueIndex;not null" json:"name"`
	Weight  int      `gorm:"not null;default:0" json:"weight"`
	Sources []Source `gorm:"many2many:medium_sources;" json:"sources,omitempty"`
}

type Source struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"uniqueIndex;not null" json:"name"`
	Weight  int      `gorm:"not null;default:0" json:"weight"`
	Mediums []Medium `gorm:"many2many:medium_sources;" json:"mediums,omitempty"`
}

type CampaignProject struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}

type Content struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}
