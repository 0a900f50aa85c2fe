package repository

import (
	"context"

	"gestionhomeclean/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MateriaPrimaRepository interface {
	Create(ctx context.Context, m *model.MateriaPrima) error
	CreateLote(ctx context.Context, lote []*model.MateriaPrima) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.MateriaPrima, error)
	List(ctx context.Context) ([]model.MateriaPrima, error)
	Update(ctx context.Context, m *model.MateriaPrima) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type materiaPrimaRepo struct{ db *gorm.DB }

func NewMateriaPrimaRepository(db *gorm.DB) MateriaPrimaRepository {
	return &materiaPrimaRepo{db: db}
}

func (r *materiaPrimaRepo) Create(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materiaPrimaRepo) CreateLote(ctx context.Context, lote []*model.MateriaPrima) error {
	if len(lote) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(lote).Error
}

func (r *materiaPrimaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := r.db.WithContext(ctx).Preload("Suplidor").First(&m, id).Error
	return &m, err
}

func (r *materiaPrimaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&m).Error
	return &m, err
}

func (r *materiaPrimaRepo) List(ctx context.Context) ([]model.MateriaPrima, error) {
	var materias []model.MateriaPrima
	err := r.db.WithContext(ctx).Preload("Suplidor").Order("nombre").Find(&materias).Error
	return materias, err
}

func (r *materiaPrimaRepo) Update(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materiaPrimaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MateriaPrima{}, id).Error
}
