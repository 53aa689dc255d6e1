package service

import (
	"context"
	"testing"

	"github.com/emrgen/linkdealer/internal/model"
	"github.com/emrgen/linkdealer/internal/store"
	"github.com/emrgen/linkdealer/internal/tester"
	"github.com/emrgen/linkdealer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() *schema.Info {
	return &schema.Info{
		Users: []schema.UserOption{
			{Value: "alice"},
			{Value: "crawler", IsBot: true},
		},
		TermMaterials: []schema.Option{{Value: "sale"}},
		TermPages:     []schema.Option{{Value: "home"}},
		Mediums: []schema.MediumOption{
			{Value: "social", Sources: []schema.Option{{Value: "vk"}, {Value: "tg"}}},
		},
		CampaignProjects: []schema.Option{{Value: "spring"}},
		Contents:         []schema.Option{{Value: "banner"}},
	}
}

func TestInfoService_UpdateInfo(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	svc := NewInfoService(s, nil)
	ctx := context.TODO()

	out, err := svc.UpdateInfo(ctx, snapshotFixture())
	require.NoError(t, err)

	require.Len(t, out.Users, 2)
	require.Len(t, out.Mediums, 1)
	require.Len(t, out.Mediums[0].Sources, 2)
	assert.Equal(t, "social", out.Mediums[0].Value)
	assert.NotNil(t, out.Mediums[0].Ident)
	assert.Empty(t, out.LastLinks)

	bot, err := s.GetUserByName(ctx, "crawler")
	require.NoError(t, err)
	assert.True(t, bot.IsBot)
}

func TestInfoService_UpdateInfoIdempotent(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	svc := NewInfoService(s, nil)
	ctx := context.TODO()

	first, err := svc.UpdateInfo(ctx, snapshotFixture())
	require.NoError(t, err)

	// applying the same snapshot again must not create duplicates or
	// rename anything
	second, err := svc.UpdateInfo(ctx, snapshotFixture())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, tester.TestDB().Model(&model.Source{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestInfoService_UpdateInfoRename(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	svc := NewInfoService(s, nil)
	ctx := context.TODO()

	out, err := svc.UpdateInfo(ctx, snapshotFixture())
	require.NoError(t, err)

	materialID := *out.TermMaterials[0].Ident
	mediumID := *out.Mediums[0].Ident

	_, err = svc.UpdateInfo(ctx, &schema.Info{
		TermMaterials: []schema.Option{{Ident: &materialID, Value: "clearance"}},
		Mediums: []schema.MediumOption{
			{Ident: &mediumID, Value: "social media", Sources: []schema.Option{{Value: "vk"}}},
		},
	})
	require.NoError(t, err)

	material, err := s.GetTermMaterial(ctx, materialID)
	require.NoError(t, err)
	assert.Equal(t, "clearance", material.Name)

	medium, err := s.GetMediumWithSources(ctx, mediumID)
	require.NoError(t, err)
	assert.Equal(t, "social media", medium.Name)
	// the source list is additive only, nothing was detached
	assert.Len(t, medium.Sources, 2)
}

func TestInfoService_UpdateInfoUnknownIdentSkipped(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	svc := NewInfoService(s, nil)
	ctx := context.TODO()

	ghost := uint(9999)
	out, err := svc.UpdateInfo(ctx, &schema.Info{
		TermPages: []schema.Option{{Ident: &ghost, Value: "ghost"}},
		Mediums:   []schema.MediumOption{{Ident: &ghost, Value: "ghost", Sources: []schema.Option{{Value: "vk"}}}},
	})
	require.NoError(t, err)

	// nothing was created for the unmatched idents
	assert.Empty(t, out.TermPages)
	assert.Empty(t, out.Mediums)

	var count int64
	require.NoError(t, tester.TestDB().Model(&model.Source{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInfoService_GetInfoOrdering(t *testing.T) {
	tester.Setup()
	db := tester.TestDB()
	s := store.NewGormStore(db)
	svc := NewInfoService(s, nil)
	ctx := context.TODO()

	require.NoError(t, db.Create(&model.Content{Name: "light", Weight: 1}).Error)
	require.NoError(t, db.Create(&model.Content{Name: "heavy", Weight: 10}).Error)
	require.NoError(t, db.Create(&model.User{Name: "zoe", Weight: 10}).Error)
	require.NoError(t, db.Create(&model.User{Name: "amy", Weight: 1}).Error)

	medium := &model.Medium{Name: "social"}
	require.NoError(t, db.Create(medium).Error)
	require.NoError(t, db.Create(&model.Source{Name: "minor", Weight: 1}).Error)
	require.NoError(t, db.Create(&model.Source{Name: "major", Weight: 9}).Error)

	var sources []model.Source
	require.NoError(t, db.Find(&sources).Error)
	for i := range sources {
		require.NoError(t, s.AttachSource(ctx, medium, &sources[i]))
	}

	info, err := svc.GetInfo(ctx)
	require.NoError(t, err)

	// taxonomies order weight desc, users weight asc
	assert.Equal(t, "heavy", info.Contents[0].Value)
	assert.Equal(t, "amy", info.Users[0].Value)
	require.Len(t, info.Mediums, 1)
	require.Len(t, info.Mediums[0].Sources, 2)
	assert.Equal(t, "major", info.Mediums[0].Sources[0].Value)
}

func TestInfoService_GetInfoAfterCreateLink(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	seedTaxonomy(t, s)
	ctx := context.TODO()

	links := NewLinkService(s, nil)
	_, err := links.CreateLink(ctx, &schema.LinkCreate{
		TargetURL:       "https://example.com/",
		TermMaterial:    schema.ByName("sale"),
		TermPage:        schema.ByName("home"),
		Medium:          schema.ByName("social"),
		Source:          schema.ByName("vksource"),
		CampaignProject: schema.ByName("spring"),
		Content:         schema.ByName("banner"),
		User:            schema.ByName("alice"),
	})
	require.NoError(t, err)

	info, err := NewInfoService(s, nil).GetInfo(ctx)
	require.NoError(t, err)

	require.Len(t, info.LastLinks, 1)
	link := info.LastLinks[0]
	assert.Equal(t, "social", link.MediumName)
	assert.Equal(t, "vksource", link.SourceName)
	assert.Equal(t, "spring", link.CampaignProjectName)
	assert.Equal(t, "alice", link.UserName)
}
