package service

import (
	"context"

	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/repository"
)

// InventarioService aggregates the low-stock view across finished products
// and raw materials.
type InventarioService interface {
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	productos repository.ProductoRepository
	materias  repository.MateriaPrimaRepository
}

func NewInventarioService(productos repository.ProductoRepository, materias repository.MateriaPrimaRepository) InventarioService {
	return &inventarioService{productos: productos, materias: materias}
}

func (s *inventarioService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	var alertas []dto.AlertaStockResponse

	productos, err := s.productos.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range productos {
		if p := &productos[i]; p.BajoStock() {
			alertas = append(alertas, dto.AlertaStockResponse{
				Tipo:         "producto",
				ID:           p.ID.String(),
				Nombre:       p.Nombre,
				Stock:        p.Stock,
				NivelReorden: p.NivelReorden,
			})
		}
	}

	materias, err := s.materias.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range materias {
		if m := &materias[i]; m.BajoStock() {
			alertas = append(alertas, dto.AlertaStockResponse{
				Tipo:         "materia_prima",
				ID:           m.ID.String(),
				Nombre:       m.Nombre,
				Stock:        m.Stock,
				NivelReorden: m.NivelReorden,
			})
		}
	}

	return alertas, nil
}
