package repository

import (
	"context"

	"gestionhomeclean/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuplidorRepository defines the data access contract for suppliers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type SuplidorRepository interface {
	Create(ctx context.Context, s *model.Suplidor) error
	CreateLote(ctx context.Context, lote []*model.Suplidor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Suplidor, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Suplidor, error)
	List(ctx context.Context) ([]model.Suplidor, error)
	Update(ctx context.Context, s *model.Suplidor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type suplidorRepo struct{ db *gorm.DB }

func NewSuplidorRepository(db *gorm.DB) SuplidorRepository { return &suplidorRepo{db: db} }

func (r *suplidorRepo) Create(ctx context.Context, s *model.Suplidor) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *suplidorRepo) CreateLote(ctx context.Context, lote []*model.Suplidor) error {
	if len(lote) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(lote).Error
}

func (r *suplidorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Suplidor, error) {
	var s model.Suplidor
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *suplidorRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Suplidor, error) {
	var s model.Suplidor
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&s).Error
	return &s, err
}

func (r *suplidorRepo) List(ctx context.Context) ([]model.Suplidor, error) {
	var suplidores []model.Suplidor
	err := r.db.WithContext(ctx).Order("created_at").Find(&suplidores).Error
	return suplidores, err
}

func (r *suplidorRepo) Update(ctx context.Context, s *model.Suplidor) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *suplidorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Suplidor{}, id).Error
}
