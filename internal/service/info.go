package service

import (
	"context"
	"errors"

	"github.com/emrgen/linkdealer/internal/model"
	"github.com/emrgen/linkdealer/schema"
	"github.com/emrgen/linkdealer/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// lastLinkCount is how many recent links ride along with the taxonomy
// snapshot.
const lastLinkCount = 10

// SnapshotCache holds a pre-built info snapshot. A nil cache or a cache
// error always degrades to the database read.
type SnapshotCache interface {
	Get(ctx context.Context) (*schema.Info, error)
	Set(ctx context.Context, info *schema.Info) error
	Invalidate(ctx context.Context) error
}

// NewInfoService creates a new InfoService.
func NewInfoService(store store.Store, cache SnapshotCache) *InfoService {
	return &InfoService{
		store: store,
		cache: cache,
	}
}

// InfoService reads the full taxonomy for UI display and applies bulk
// snapshot updates.
type InfoService struct {
	store store.Store
	cache SnapshotCache
}

// GetInfo returns the taxonomy snapshot plus the most recent links,
// serving from the snapshot cache when possible.
func (s *InfoService) GetInfo(ctx context.Context) (*schema.Info, error) {
	if s.cache != nil {
		snap, err := s.cache.Get(ctx)
		if err != nil {
			logrus.Warnf("info snapshot read failed: %v", err)
		} else if snap != nil {
			return snap, nil
		}
	}

	return s.Refresh(ctx)
}

// Refresh rebuilds the snapshot from the store and re-primes the cache.
func (s *InfoService) Refresh(ctx context.Context) (*schema.Info, error) {
	snap, err := buildSnapshot(ctx, s.store)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil {
			logrus.Warnf("info snapshot write failed: %v", err)
		}
	}

	return snap, nil
}

// UpdateInfo applies a client-submitted snapshot in one transaction:
// entries without an ident are upserted by name, entries with an ident are
// renamed in place, and medium source sets are reconciled additively.
// Partial failure rolls the whole update back.
func (s *InfoService) UpdateInfo(ctx context.Context, in *schema.Info) (*schema.Info, error) {
	var out *schema.Info

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		for _, user := range in.Users {
			if user.Ident == nil {
				if _, err := tx.UpsertUser(ctx, user.Value, user.IsBot); err != nil {
					return err
				}
				continue
			}
			if err := rename(ctx, tx.RenameUser, "user", *user.Ident, user.Value); err != nil {
				return err
			}
		}

		for _, opt := range in.TermMaterials {
			if err := applyOption(ctx, opt, tx.UpsertTermMaterial, tx.RenameTermMaterial, "term_material"); err != nil {
				return err
			}
		}

		for _, opt := range in.TermPages {
			if err := applyOption(ctx, opt, tx.UpsertTermPage, tx.RenameTermPage, "term_page"); err != nil {
				return err
			}
		}

		for _, opt := range in.Mediums {
			if err := applyMedium(ctx, tx, opt); err != nil {
				return err
			}
		}

		for _, opt := range in.CampaignProjects {
			if err := applyOption(ctx, opt, tx.UpsertCampaignProject, tx.RenameCampaignProject, "campaign_project"); err != nil {
				return err
			}
		}

		for _, opt := range in.Contents {
			if err := applyOption(ctx, opt, tx.UpsertContent, tx.RenameContent, "content"); err != nil {
				return err
			}
		}

		// build the response inside the transaction so it reflects exactly
		// the committed state
		snap, err := buildSnapshot(ctx, tx)
		if err != nil {
			return err
		}
		out = snap

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, out); err != nil {
			logrus.Warnf("info snapshot write failed: %v", err)
		}
	}

	return out, nil
}

func applyOption[T any](
	ctx context.Context,
	opt schema.Option,
	upsert func(context.Context, string) (*T, error),
	renameFn func(context.Context, uint, string) (int64, error),
	typ string,
) error {
	if opt.Ident == nil {
		_, err := upsert(ctx, opt.Value)
		return err
	}
	return rename(ctx, renameFn, typ, *opt.Ident, opt.Value)
}

// rename updates an entity's name in place. A missing id is skipped
// silently apart from a warning; surfacing it would fail snapshots built
// against a stale taxonomy.
func rename(ctx context.Context, fn func(context.Context, uint, string) (int64, error), typ string, id uint, name string) error {
	n, err := fn(ctx, id, name)
	if err != nil {
		return err
	}
	if n == 0 {
		logrus.Warnf("skipping rename of unknown %s id %d", typ, id)
	}
	return nil
}

func applyMedium(ctx context.Context, tx store.Store, opt schema.MediumOption) error {
	var medium *model.Medium
	var err error

	if opt.Ident == nil {
		medium, err = tx.UpsertMedium(ctx, opt.Value)
		if err != nil {
			return err
		}
	} else {
		medium, err = tx.GetMedium(ctx, *opt.Ident)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// unknown ident: skip the entry, nested sources included
			logrus.Warnf("skipping update of unknown medium id %d", *opt.Ident)
			return nil
		}
		if err != nil {
			return err
		}
		if err := rename(ctx, tx.RenameMedium, "medium", medium.ID, opt.Value); err != nil {
			return err
		}
	}

	// reconcile the nested source list; attachment is additive only
	for _, src := range opt.Sources {
		var source *model.Source
		if src.Ident != nil {
			source, err = tx.GetSource(ctx, *src.Ident)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				source, err = tx.UpsertSource(ctx, src.Value)
			}
		} else {
			source, err = tx.UpsertSource(ctx, src.Value)
		}
		if err != nil {
			return err
		}

		if err := tx.AttachSource(ctx, medium, source); err != nil {
			return err
		}
	}

	return nil
}

func buildSnapshot(ctx context.Context, tx store.Store) (*schema.Info, error) {
	users, err := tx.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	materials, err := tx.ListTermMaterials(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := tx.ListTermPages(ctx)
	if err != nil {
		return nil, err
	}

	mediums, err := tx.ListMediums(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := tx.ListCampaignProjects(ctx)
	if err != nil {
		return nil, err
	}

	contents, err := tx.ListContents(ctx)
	if err != nil {
		return nil, err
	}

	links, err := tx.ListRecentLinks(ctx, lastLinkCount)
	if err != nil {
		return nil, err
	}

	info := &schema.Info{
		Users:            make([]schema.UserOption, 0, len(users)),
		TermMaterials:    make([]schema.Option, 0, len(materials)),
		TermPages:        make([]schema.Option, 0, len(pages)),
		Mediums:          make([]schema.MediumOption, 0, len(mediums)),
		CampaignProjects: make([]schema.Option, 0, len(projects)),
		Contents:         make([]schema.Option, 0, len(contents)),
		LastLinks:        make([]schema.Link, 0, len(links)),
	}

	for _, user := range users {
		ident := user.ID
		info.Users = append(info.Users, schema.UserOption{
			Ident: &ident,
			Value: user.Name,
			IsBot: user.IsBot,
		})
	}

	for _, material := range materials {
		info.TermMaterials = append(info.TermMaterials, option(material.ID, material.Name))
	}

	for _, page := range pages {
		info.TermPages = append(info.TermPages, option(page.ID, page.Name))
	}

	for _, medium := range mediums {
		ident := medium.ID
		sources := make([]schema.Option, 0, len(medium.Sources))
		for _, source := range medium.Sources {
			sources = append(sources, option(source.ID, source.Name))
		}
		info.Mediums = append(info.Mediums, schema.MediumOption{
			Ident:   &ident,
			Value:   medium.Name,
			Sources: sources,
		})
	}

	for _, project := range projects {
		info.CampaignProjects = append(info.CampaignProjects, option(project.ID, project.Name))
	}

	for _, content := range contents {
		info.Contents = append(info.Contents, option(content.ID, content.Name))
	}

	for _, link := range links {
		info.LastLinks = append(info.LastLinks, *linkResponse(link))
	}

	return info, nil
}

func option(id uint, name string) schema.Option {
	ident := id
	return schema.Option{Ident: &ident, Value: name}
}
