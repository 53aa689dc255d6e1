package store

import (
	"context"
	"testing"
	"time"

	"github.com/emrgen/linkdealer/internal/model"
	"github.com/emrgen/linkdealer/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStore_UpsertByName(t *testing.T) {
	tester.Setup()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	first, err := s.UpsertMedium(ctx, "social")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := s.UpsertMedium(ctx, "social")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	err = tester.TestDB().Model(&model.Medium{}).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_UpsertUserKeepsFields(t *testing.T) {
	tester.Setup()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	bot, err := s.UpsertUser(ctx, "crawler", true)
	require.NoError(t, err)
	assert.True(t, bot.IsBot)

	// a second upsert of the same name is a no-op, is_bot included
	again, err := s.UpsertUser(ctx, "crawler", false)
	require.NoError(t, err)
	assert.Equal(t, bot.ID, again.ID)
	assert.True(t, again.IsBot)
}

func TestGormStore_AttachSource(t *testing.T) {
	tester.Setup()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	medium, err := s.UpsertMedium(ctx, "social")
	require.NoError(t, err)
	source, err := s.UpsertSource(ctx, "vk")
	require.NoError(t, err)

	require.NoError(t, s.AttachSource(ctx, medium, source))
	// attaching twice must not duplicate the join row
	require.NoError(t, s.AttachSource(ctx, medium, source))

	got, err := s.GetMediumWithSources(ctx, medium.ID)
	require.NoError(t, err)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, "vk", got.Sources[0].Name)
}

func TestGormStore_Rename(t *testing.T) {
	tester.Setup()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	content, err := s.UpsertContent(ctx, "banner")
	require.NoError(t, err)

	n, err := s.RenameContent(ctx, content.ID, "teaser")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// renaming an unknown id affects nothing and is not an error
	n, err = s.RenameContent(ctx, 9999, "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := s.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, "teaser", got.Name)
}

func TestGormStore_ListOrdering(t *testing.T) {
	tester.Setup()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	db := tester.TestDB()

	require.NoError(t, db.Create(&model.Content{Name: "light", Weight: 1}).Error)
	require.NoError(t, db.Create(&model.Content{Name: "heavy", Weight: 10}).Error)
	require.NoError(t, db.Create(&model.User{Name: "zoe", Weight: 10}).Error)
	require.NoError(t, db.Create(&model.User{Name: "amy", Weight: 1}).Error)

	contents, err := s.ListContents(ctx)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	assert.Equal(t, "heavy", contents[0].Name)

	// users order ascending, unlike the rest
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "amy", users[0].Name)
}

func TestGormStore_ListRecentLinks(t *testing.T) {
	tester.Setup()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	material, _ := s.UpsertTermMaterial(ctx, "sale")
	page, _ := s.UpsertTermPage(ctx, "home")
	medium, _ := s.UpsertMedium(ctx, "social")
	source, _ := s.UpsertSource(ctx, "vk")
	project, _ := s.UpsertCampaignProject(ctx, "spring")
	content, _ := s.UpsertContent(ctx, "banner")
	user, _ := s.UpsertUser(ctx, "alice", false)
	require.NoError(t, s.AttachSource(ctx, medium, source))

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		err := s.CreateLink(ctx, &model.Link{
			TargetURL:         "https://example.com",
			FullURL:           "https://example.com?utm_source=vk",
			CampaignDate:      base.Add(time.Duration(i) * time.Hour),
			CampaignDop:       "0",
			TermMaterialID:    material.ID,
			TermPageID:        page.ID,
			MediumID:          medium.ID,
			SourceID:          source.ID,
			CampaignProjectID: project.ID,
			ContentID:         content.ID,
			UserID:            user.ID,
		})
		require.NoError(t, err)
	}

	links, err := s.ListRecentLinks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, links, 10)

	// newest first, references preloaded
	assert.True(t, links[0].CampaignDate.After(links[1].CampaignDate))
	assert.Equal(t, "social", links[0].Medium.Name)
	assert.Equal(t, "alice", links[0].User.Name)
}
