package store

import (
	"context"

	"github.com/emrgen/linkdealer/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// getByID and friends keep the per-type store methods down to one line
// each; the taxonomy tables all share the id/name/weight shape.

func getByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func getByName[T any](ctx context.Context, db *gorm.DB, name string) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// upsertByName inserts ent unless its name is already taken, then reads
// the surviving row back. The insert-on-conflict keeps concurrent upserts
// of the same new name from creating duplicates; the name columns carry a
// unique index.
func upsertByName[T any](ctx context.Context, db *gorm.DB, ent *T, name string) (*T, error) {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(ent).Error
	if err != nil {
		return nil, err
	}

	return getByName[T](ctx, db, name)
}

func renameByID[T any](ctx context.Context, db *gorm.DB, id uint, name string) (int64, error) {
	var ent T
	res := db.WithContext(ctx).Model(&ent).Where("id = ?", id).Update("name", name)
	return res.RowsAffected, res.Error
}

func listByWeight[T any](ctx context.Context, db *gorm.DB, order string) ([]*T, error) {
	var out []*T
	err := db.WithContext(ctx).Order("weight " + order).Find(&out).Error
	return out, err
}

func (g *GormStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return getByID[model.User](ctx, g.db, id)
}

func (g *GormStore) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	return getByName[model.User](ctx, g.db, name)
}

func (g *GormStore) UpsertUser(ctx context.Context, name string, isBot bool) (*model.User, error) {
	return upsertByName(ctx, g.db, &model.User{Name: name, IsBot: isBot}, name)
}

func (g *GormStore) RenameUser(ctx context.Context, id uint, name string) (int64, error) {
	return renameByID[model.User](ctx, g.db, id, name)
}

// ListUsers orders ascending, unlike every other taxonomy.
func (g *GormStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	return listByWeight[model.User](ctx, g.db, "asc")
}

func (g *GormStore) GetTermMaterial(ctx context.Context, id uint) (*model.TermMaterial, error) {
	return getByID[model.TermMaterial](ctx, g.db, id)
}

func (g *GormStore) GetTermMaterialByName(ctx context.Context, name string) (*model.TermMaterial, error) {
	return getByName[model.TermMaterial](ctx, g.db, name)
}

func (g *GormStore) UpsertTermMaterial(ctx context.Context, name string) (*model.TermMaterial, error) {
	return upsertByName(ctx, g.db, &model.TermMaterial{Name: name}, name)
}

func (g *GormStore) RenameTermMaterial(ctx context.Context, id uint, name string) (int64, error) {
	return renameByID[model.TermMaterial](ctx, g.db, id, name)
}

func (g *GormStore) ListTermMaterials(ctx context.Context) ([]*model.TermMaterial, error) {
	return listByWeight[model.TermMaterial](ctx, g.db, "desc")
}

func (g *GormStore) GetTermPage(ctx context.Context, id uint) (*model.TermPage, error) {
	return getByID[model.TermPage](ctx, g.db, id)
}

func (g *GormStore) GetTermPageByName(ctx context.Context, name string) (*model.TermPage, error) {
	return getByName[model.TermPage](ctx, g.db, name)
}

func (g *GormStore) UpsertTermPage(ctx context.Context, name string) (*model.TermPage, error) {
	return upsertByName(ctx, g.db, &model.TermPage{Name: name}, name)
}

func (g *GormStore) RenameTermPage(ctx context.Context, id uint, name string) (int64, error) {
	return renameByID[model.TermPage](ctx, g.db, id, name)
}

func (g *GormStore) ListTermPages(ctx context.Context) ([]*model.TermPage, error) {
	return listByWeight[model.TermPage](ctx, g.db, "desc")
}

func (g *GormStore) GetMedium(ctx context.Context, id uint) (*model.Medium, error) {
	return getByID[model.Medium](ctx, g.db, id)
}

func (g *GormStore) GetMediumByName(ctx context.Context, name string) (*model.Medium, error) {
	return getByName[model.Medium](ctx, g.db, name)
}

func (g *GormStore) UpsertMedium(ctx context.Context, name string) (*model.Medium, error) {
	return upsertByName(ctx, g.db, &model.Medium{Name: name}, name)
}

func (g *GormStore) RenameMedium(ctx context.Context, id uint, name string) (int64, error) {
	return renameByID[model.Medium](ctx, g.db, id, name)
}

func (g *GormStore) GetMediumWithSources(ctx context.Context, id uint) (*model.Medium, error) {
	var medium model.Medium
	err := g.db.WithContext(ctx).
		Preload("Sources", sourcesByWeight).
		First(&medium, id).Error
	if err != nil {
		return nil, err
	}
	return &medium, nil
}

func (g *GormStore) ListMediums(ctx context.Context) ([]*model.Medium, error) {
	var mediums []*model.Medium
	err := g.db.WithContext(ctx).
		Preload("Sources", sourcesByWeight).
		Order("weight desc").
		Find(&mediums).Error
	return mediums, err
}

func sourcesByWeight(db *gorm.DB) *gorm.DB {
	return db.Order("sources.weight desc")
}

// AttachSource appends the source to the medium's set. The association
// append upserts the join row, so repeated attaches are no-ops.
func (g *GormStore) AttachSource(ctx context.Context, medium *model.Medium, source *model.Source) error {
	return g.db.WithContext(ctx).Model(medium).Association("Sources").Append(source)
}

func (g *GormStore) GetSource(ctx context.Context, id uint) (*model.Source, error) {
	return getByID[model.Source](ctx, g.db, id)
}

func (g *GormStore) GetSourceByName(ctx context.Context, name string) (*model.Source, error) {
	return getByName[model.Source](ctx, g.db, name)
}

func (g *GormStore) UpsertSource(ctx context.Context, name string) (*model.Source, error) {
	return upsertByName(ctx, g.db, &model.Source{Name: name}, name)
}

func (g *GormStore) GetCampaignProject(ctx context.Context, id uint) (*model.CampaignProject, error) {
	return getByID[model.CampaignProject](ctx, g.db, id)
}

func (g *GormStore) GetCampaignProjectByName(ctx context.Context, name string) (*model.CampaignProject, error) {
	return getByName[model.CampaignProject](ctx, g.db, name)
}

func (g *GormStore) UpsertCampaignProject(ctx context.Context, name string) (*model.CampaignProject, error) {
	return upsertByName(ctx, g.db, &model.CampaignProject{Name: name}, name)
}

func (g *GormStore) RenameCampaignProject(ctx context.Context, id uint, name string) (int64, error) {
	return renameByID[model.CampaignProject](ctx, g.db, id, name)
}

func (g *GormStore) ListCampaignProjects(ctx context.Context) ([]*model.CampaignProject, error) {
	return listByWeight[model.CampaignProject](ctx, g.db, "desc")
}

func (g *GormStore) GetContent(ctx context.Context, id uint) (*model.Content, error) {
	return getByID[model.Content](ctx, g.db, id)
}

func (g *GormStore) GetContentByName(ctx context.Context, name string) (*model.Content, error) {
	return getByName[model.Content](ctx, g.db, name)
}

func (g *GormStore) UpsertContent(ctx context.Context, name string) (*model.Content, error) {
	return upsertByName(ctx, g.db, &model.Content{Name: name}, name)
}

func (g *GormStore) RenameContent(ctx context.Context, id uint, name string) (int64, error) {
	return renameByID[model.Content](ctx, g.db, id, name)
}

func (g *GormStore) ListContents(ctx context.Context) ([]*model.Content, error) {
	return listByWeight[model.Content](ctx, g.db, "desc")
}

// CreateLink writes the link row only; the referenced entities already
// exist and must not be touched.
func (g *GormStore) CreateLink(ctx context.Context, link *model.Link) error {
	return g.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

func (g *GormStore) ListRecentLinks(ctx context.Context, n int) ([]*model.Link, error) {
	var links []*model.Link
	err := g.db.WithContext(ctx).
		Preload("TermMaterial").
		Preload("TermPage").
		Preload("Medium").
		Preload("Source").
		Preload("CampaignProject").
		Preload("Content").
		Preload("User").
		Order("campaign_date desc").
		Limit(n).
		Find(&links).Error
	return links, err
}

func (g *GormStore) CountLinks(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Link{}).Count(&count).Error
	return count, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
