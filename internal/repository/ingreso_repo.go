package repository

import (
	"context"

	"gestionhomeclean/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngresoRepository interface {
	Create(ctx context.Context, i *model.Ingreso) error
	CreateLote(ctx context.Context, lote []*model.Ingreso) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingreso, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Ingreso, error)
	List(ctx context.Context) ([]model.Ingreso, error)
	Update(ctx context.Context, i *model.Ingreso) error
	Delete(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
	// FindByIDTx locks the income row FOR UPDATE inside tx; see
	// EgresoRepository.FindByIDTx.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Ingreso, error)
	AgregarPagoTx(tx *gorm.DB, pago *model.Pago) error
	EliminarPago(ctx context.Context, pagoID uuid.UUID) error
}

type ingresoRepo struct{ db *gorm.DB }

func NewIngresoRepository(db *gorm.DB) IngresoRepository { return &ingresoRepo{db: db} }

func (r *ingresoRepo) DB() *gorm.DB { return r.db }

func (r *ingresoRepo) Create(ctx context.Context, i *model.Ingreso) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingresoRepo) CreateLote(ctx context.Context, lote []*model.Ingreso) error {
	if len(lote) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(lote).Error
}

func (r *ingresoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingreso, error) {
	var i model.Ingreso
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Cliente").First(&i, id).Error
	return &i, err
}

func (r *ingresoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Ingreso, error) {
	var i model.Ingreso
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&i, id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("ingreso_id = ?", id).Find(&i.Pagos).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingresoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Ingreso, error) {
	var i model.Ingreso
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Cliente").
		Where("codigo = ?", codigo).First(&i).Error
	return &i, err
}

func (r *ingresoRepo) List(ctx context.Context) ([]model.Ingreso, error) {
	var ingresos []model.Ingreso
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Cliente").
		Order("fecha DESC").Find(&ingresos).Error
	return ingresos, err
}

func (r *ingresoRepo) Update(ctx context.Context, i *model.Ingreso) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingresoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ingreso{}, id).Error
}

func (r *ingresoRepo) AgregarPagoTx(tx *gorm.DB, pago *model.Pago) error {
	return tx.Create(pago).Error
}

func (r *ingresoRepo) EliminarPago(ctx context.Context, pagoID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pago{}, pagoID).Error
}
