package service

import (
	"context"
	"errors"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/linkdealer/internal/model"
	"github.com/emrgen/linkdealer/schema"
	"github.com/emrgen/linkdealer/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewLinkService creates a new LinkService.
func NewLinkService(store store.Store, cache SnapshotCache) *LinkService {
	return &LinkService{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// LinkService composes tracked links: it resolves the loosely typed
// taxonomy refs, validates the medium-source relationship, builds the
// tagged url and persists the link, all within one transaction.
type LinkService struct {
	store store.Store
	cache SnapshotCache
	now   func() time.Time // injectable for deterministic url tests
}

// resolveRef dispatches a ref to the by-id or by-name lookup of one
// taxonomy type and converts a miss into a NotFoundError naming that type.
func resolveRef[T any](
	ctx context.Context,
	ref schema.Ref,
	typ string,
	byID func(context.Context, uint) (*T, error),
	byName func(context.Context, string) (*T, error),
) (*T, error) {
	var ent *T
	var err error

	switch {
	case ref.IsID():
		ent, err = byID(ctx, ref.ID())
	case ref.IsName():
		ent, err = byName(ctx, ref.Name())
	default:
		return nil, &ValidationError{Reason: typ + " reference is missing"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Type: typ, Identifier: ref.String()}
	}
	if err != nil {
		return nil, err
	}

	return ent, nil
}

// CreateLink mints a link for the request. All refs must resolve and the
// source must belong to the medium's source set; any failure aborts with
// no partial writes.
func (l *LinkService) CreateLink(ctx context.Context, req *schema.LinkCreate) (*schema.Link, error) {
	if req.TargetURL == "" {
		return nil, &ValidationError{Reason: "target_url is required"}
	}

	campaignDate := l.now()

	var link *model.Link
	err := l.store.Transaction(ctx, func(tx store.Store) error {
		material, err := resolveRef(ctx, req.TermMaterial, "term_material", tx.GetTermMaterial, tx.GetTermMaterialByName)
		if err != nil {
			return err
		}

		page, err := resolveRef(ctx, req.TermPage, "term_page", tx.GetTermPage, tx.GetTermPageByName)
		if err != nil {
			return err
		}

		medium, err := resolveRef(ctx, req.Medium, "medium", tx.GetMedium, tx.GetMediumByName)
		if err != nil {
			return err
		}

		source, err := resolveRef(ctx, req.Source, "source", tx.GetSource, tx.GetSourceByName)
		if err != nil {
			return err
		}

		project, err := resolveRef(ctx, req.CampaignProject, "campaign_project", tx.GetCampaignProject, tx.GetCampaignProjectByName)
		if err != nil {
			return err
		}

		content, err := resolveRef(ctx, req.Content, "content", tx.GetContent, tx.GetContentByName)
		if err != nil {
			return err
		}

		user, err := resolveRef(ctx, req.User, "user", tx.GetUser, tx.GetUserByName)
		if err != nil {
			return err
		}

		// the relationship check belongs here, not in the storage layer
		attached, err := tx.GetMediumWithSources(ctx, medium.ID)
		if err != nil {
			return err
		}
		sourceIDs := mapset.NewSet[uint]()
		for _, s := range attached.Sources {
			sourceIDs.Add(s.ID)
		}
		if !sourceIDs.Contains(source.ID) {
			return &InvalidAssociationError{Medium: medium.Name, Source: source.Name}
		}

		fullURL, err := tagURL(req.TargetURL, utmTags{
			source:   source.Name,
			medium:   medium.Name,
			campaign: campaignTag(project.Name, campaignDate),
			content:  content.Name,
			term:     termTag(material.Name, page.Name, req.CampaignDop),
		})
		if err != nil {
			return err
		}

		link = &model.Link{
			TargetURL:         req.TargetURL,
			FullURL:           fullURL,
			CampaignDate:      campaignDate,
			TermMaterialID:    material.ID,
			TermMaterial:      *material,
			TermPageID:        page.ID,
			TermPage:          *page,
			MediumID:          medium.ID,
			Medium:            *medium,
			SourceID:          source.ID,
			Source:            *source,
			CampaignProjectID: project.ID,
			CampaignProject:   *project,
			ContentID:         content.ID,
			Content:           *content,
			UserID:            user.ID,
			User:              *user,
		}
		if req.CampaignDop != "" {
			link.CampaignDop = req.CampaignDop
		} else {
			link.CampaignDop = "0"
		}

		return tx.CreateLink(ctx, link)
	})
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Invalidate(ctx); err != nil {
			logrus.Warnf("failed to invalidate info snapshot: %v", err)
		}
	}

	return linkResponse(link), nil
}

func linkResponse(link *model.Link) *schema.Link {
	return &schema.Link{
		ID:                  link.ID,
		TargetURL:           link.TargetURL,
		CampaignDate:        link.CampaignDate,
		CampaignDop:         link.CampaignDop,
		FullURL:             link.FullURL,
		TermMaterialID:      link.TermMaterialID,
		TermMaterialName:    link.TermMaterial.Name,
		TermPageID:          link.TermPageID,
		TermPageName:        link.TermPage.Name,
		MediumID:            link.MediumID,
		MediumName:          link.Medium.Name,
		SourceID:            link.SourceID,
		SourceName:          link.Source.Name,
		CampaignProjectID:   link.CampaignProjectID,
		CampaignProjectName: link.CampaignProject.Name,
		ContentID:           link.ContentID,
		ContentName:         link.Content.Name,
		UserID:              link.UserID,
		UserName:            link.User.Name,
	}
}
