package repository

import (
	"context"

	"gestionhomeclean/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EgresoRepository persists expenses and their partial payments.
// Pagos and the supplier link are always preloaded so that balance
// computations and joined-field sorting never see a partially hydrated
// record.
type EgresoRepository interface {
	Create(ctx context.Context, e *model.Egreso) error
	CreateLote(ctx context.Context, lote []*model.Egreso) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Egreso, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Egreso, error)
	List(ctx context.Context) ([]model.Egreso, error)
	Update(ctx context.Context, e *model.Egreso) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying handle for service-level transactions.
	DB() *gorm.DB
	// FindByIDTx loads the expense inside tx with its row locked FOR
	// UPDATE, so concurrent payment inserts serialize on the record.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Egreso, error)
	AgregarPagoTx(tx *gorm.DB, pago *model.Pago) error
	EliminarPago(ctx context.Context, pagoID uuid.UUID) error
}

type egresoRepo struct{ db *gorm.DB }

func NewEgresoRepository(db *gorm.DB) EgresoRepository { return &egresoRepo{db: db} }

func (r *egresoRepo) DB() *gorm.DB { return r.db }

func (r *egresoRepo) Create(ctx context.Context, e *model.Egreso) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *egresoRepo) CreateLote(ctx context.Context, lote []*model.Egreso) error {
	if len(lote) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(lote).Error
}

func (r *egresoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Egreso, error) {
	var e model.Egreso
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Suplidor").First(&e, id).Error
	return &e, err
}

func (r *egresoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Egreso, error) {
	var e model.Egreso
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("egreso_id = ?", id).Find(&e.Pagos).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *egresoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Egreso, error) {
	var e model.Egreso
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Suplidor").
		Where("codigo = ?", codigo).First(&e).Error
	return &e, err
}

func (r *egresoRepo) List(ctx context.Context) ([]model.Egreso, error) {
	var egresos []model.Egreso
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Suplidor").
		Order("fecha DESC").Find(&egresos).Error
	return egresos, err
}

func (r *egresoRepo) Update(ctx context.Context, e *model.Egreso) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *egresoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Egreso{}, id).Error
}

func (r *egresoRepo) AgregarPagoTx(tx *gorm.DB, pago *model.Pago) error {
	return tx.Create(pago).Error
}

func (r *egresoRepo) EliminarPago(ctx context.Context, pagoID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pago{}, pagoID).Error
}
