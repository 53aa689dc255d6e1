package store

import (
	"context"

	"github.com/emrgen/linkdealer/internal/model"
)

type Store interface {
	TaxonomyStore
	LinkStore
	// Transaction runs f against a store bound to a single database
	// transaction. Any error rolls the whole unit of work back.
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

// TaxonomyStore exposes lookup, upsert, rename and listing per taxonomy
// type. Lookups return gorm.ErrRecordNotFound when the entity is absent.
// Upserts are atomic find-or-insert on the name column and never create
// duplicates under concurrent calls. Renames report rows affected and do
// not fail on a missing id. Listings order by weight descending, except
// users which order ascending.
type TaxonomyStore interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByName(ctx context.Context, name string) (*model.User, error)
	UpsertUser(ctx context.Context, name string, isBot bool) (*model.User, error)
	RenameUser(ctx context.Context, id uint, name string) (int64, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	GetTermMaterial(ctx context.Context, id uint) (*model.TermMaterial, error)
	GetTermMaterialByName(ctx context.Context, name string) (*model.TermMaterial, error)
	UpsertTermMaterial(ctx context.Context, name string) (*model.TermMaterial, error)
	RenameTermMaterial(ctx context.Context, id uint, name string) (int64, error)
	ListTermMaterials(ctx context.Context) ([]*model.TermMaterial, error)

	GetTermPage(ctx context.Context, id uint) (*model.TermPage, error)
	GetTermPageByName(ctx context.Context, name string) (*model.TermPage, error)
	UpsertTermPage(ctx context.Context, name string) (*model.TermPage, error)
	RenameTermPage(ctx context.Context, id uint, name string) (int64, error)
	ListTermPages(ctx context.Context) ([]*model.TermPage, error)

	GetMedium(ctx context.Context, id uint) (*model.Medium, error)
	GetMediumByName(ctx context.Context, name string) (*model.Medium, error)
	UpsertMedium(ctx context.Context, name string) (*model.Medium, error)
	RenameMedium(ctx context.Context, id uint, name string) (int64, error)
	// GetMediumWithSources loads a medium with its source set, ordered by
	// weight descending.
	GetMediumWithSources(ctx context.Context, id uint) (*model.Medium, error)
	// ListMediums preloads each medium's ordered source set.
	ListMediums(ctx context.Context) ([]*model.Medium, error)
	// AttachSource adds a source to a medium's set. Attaching an already
	// attached source is a no-op.
	AttachSource(ctx context.Context, medium *model.Medium, source *model.Source) error

	GetSource(ctx context.Context, id uint) (*model.Source, error)
	GetSourceByName(ctx context.Context, name string) (*model.Source, error)
	UpsertSource(ctx context.Context, name string) (*model.Source, error)

	GetCampaignProject(ctx context.Context, id uint) (*model.CampaignProject, error)
	GetCampaignProjectByName(ctx context.Context, name string) (*model.CampaignProject, error)
	UpsertCampaignProject(ctx context.Context, name string) (*model.CampaignProject, error)
	RenameCampaignProject(ctx context.Context, id uint, name string) (int64, error)
	ListCampaignProjects(ctx context.Context) ([]*model.CampaignProject, error)

	GetContent(ctx context.Context, id uint) (*model.Content, error)
	GetContentByName(ctx context.Context, name string) (*model.Content, error)
	UpsertContent(ctx context.Context, name string) (*model.Content, error)
	RenameContent(ctx context.Context, id uint, name string) (int64, error)
	ListContents(ctx context.Context) ([]*model.Content, error)
}

type LinkStore interface {
	// CreateLink writes a new link row. Links are never updated or deleted.
	CreateLink(ctx context.Context, link *model.Link) error
	// ListRecentLinks returns the n most recent links by campaign date,
	// with all references preloaded.
	ListRecentLinks(ctx context.Context, n int) ([]*model.Link, error)
	CountLinks(ctx context.Context) (int64, error)
}
