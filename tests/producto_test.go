package tests

import (
	"context"
	"testing"

	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/model"
	"gestionhomeclean/internal/repository"
	"gestionhomeclean/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	orden     []uuid.UUID
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	r.orden = append(r.orden, p.ID)
	return nil
}

func (r *stubProductoRepo) CreateLote(ctx context.Context, lote []*model.Producto) error {
	for _, p := range lote {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	resultado := make([]model.Producto, 0, len(r.orden))
	for _, id := range r.orden {
		resultado = append(resultado, *r.productos[id])
	}
	return resultado, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	for i, v := range r.orden {
		if v == id {
			r.orden = append(r.orden[:i], r.orden[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// notificadorGrabador records the alerts a service emits.
type notificadorGrabador struct {
	alertas []service.AlertaStock
}

func (n *notificadorGrabador) Notificar(_ context.Context, a service.AlertaStock) {
	n.alertas = append(n.alertas, a)
}

func buildProductoSvc() (service.ProductoService, *stubProductoRepo, *notificadorGrabador) {
	repo := newStubProductoRepo()
	grabador := &notificadorGrabador{}
	return service.NewProductoService(repo, grabador), repo, grabador
}

func crearProducto(t *testing.T, svc service.ProductoService, sku string, stock, reorden int) *dto.ProductoResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), &dto.CrearProductoRequest{
		SKU:           sku,
		Nombre:        "Cloro 5%",
		Unidad:        "galon",
		PrecioDetalle: decimal.RequireFromString("150.00"),
		PrecioMayor:   decimal.RequireFromString("120.00"),
		Stock:         stock,
		NivelReorden:  reorden,
	})
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearProductoRechazaSKUDuplicado(t *testing.T) {
	svc, _, _ := buildProductoSvc()
	crearProducto(t, svc, "CL-5", 10, 3)

	_, err := svc.Crear(context.Background(), &dto.CrearProductoRequest{
		SKU: "CL-5", Nombre: "Otro cloro", Unidad: "galon",
	})
	assert.ErrorIs(t, err, service.ErrCodigoDuplicado)
}

func TestAjustarStockNoPermiteNegativos(t *testing.T) {
	svc, repo, _ := buildProductoSvc()
	ctx := context.Background()
	creado := crearProducto(t, svc, "CL-5", 5, 2)
	id := uuid.MustParse(creado.ID)

	_, err := svc.AjustarStock(ctx, id, &dto.AjustarStockRequest{
		Delta: -6, Motivo: "venta",
	}, "ana")
	assert.ErrorIs(t, err, service.ErrStockNegativo)

	// The rejected adjustment left the stock as it was.
	p, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestAjustarStockHastaCeroEsValido(t *testing.T) {
	svc, _, _ := buildProductoSvc()
	creado := crearProducto(t, svc, "CL-5", 5, 0)

	resp, err := svc.AjustarStock(context.Background(), uuid.MustParse(creado.ID),
		&dto.AjustarStockRequest{Delta: -5, Motivo: "venta completa"}, "ana")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)
}

func TestAjustarStockDisparaAlertaDeReorden(t *testing.T) {
	svc, _, grabador := buildProductoSvc()
	ctx := context.Background()
	creado := crearProducto(t, svc, "CL-5", 10, 3)
	id := uuid.MustParse(creado.ID)

	// Still above the reorder level: no alert.
	_, err := svc.AjustarStock(ctx, id, &dto.AjustarStockRequest{Delta: -5, Motivo: "venta"}, "ana")
	require.NoError(t, err)
	assert.Empty(t, grabador.alertas)

	// Crossing the level fires one.
	resp, err := svc.AjustarStock(ctx, id, &dto.AjustarStockRequest{Delta: -3, Motivo: "venta"}, "ana")
	require.NoError(t, err)
	assert.True(t, resp.BajoStock)

	require.Len(t, grabador.alertas, 1)
	alerta := grabador.alertas[0]
	assert.Equal(t, "producto", alerta.Tipo)
	assert.Equal(t, "Cloro 5%", alerta.Nombre)
	assert.Equal(t, 2, alerta.Stock)
	assert.Equal(t, 3, alerta.NivelReorden)
}

func TestConsultarDevuelveProyeccionPublica(t *testing.T) {
	svc, _, _ := buildProductoSvc()
	crearProducto(t, svc, "CL-5", 10, 3)

	resp, err := svc.Consultar(context.Background(), "CL-5")
	require.NoError(t, err)
	assert.Equal(t, "Cloro 5%", resp.Nombre)
	assert.True(t, resp.PrecioDetalle.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, 10, resp.Stock)

	_, err = svc.Consultar(context.Background(), "NO-EXISTE")
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestImportarProductosCoercionaCeldasInvalidas(t *testing.T) {
	svc, repo, _ := buildProductoSvc()
	ctx := context.Background()

	csv := "nombre,sku,unidad,precioventadetalle,precioventamayor,stock,nivelreorden\n" +
		"Cloro,CL-5,galon,abc,120,xyz,2\n"

	resp, err := svc.Importar(ctx, csv)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Importadas)

	p, err := repo.FindBySKU(ctx, "CL-5")
	require.NoError(t, err)
	assert.True(t, p.PrecioDetalle.IsZero())
	assert.True(t, p.PrecioMayor.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 2, p.NivelReorden)
}

func TestImportarProductosOmiteSKUsDuplicados(t *testing.T) {
	svc, _, _ := buildProductoSvc()
	ctx := context.Background()
	crearProducto(t, svc, "CL-5", 10, 3)

	csv := "nombre,sku,unidad,precioventadetalle,precioventamayor,stock,nivelreorden\n" +
		"Cloro otra vez,cl-5,galon,100,90,1,1\n" +
		"Jabon,JB-1,litro,80,70,4,2\n"

	resp, err := svc.Importar(ctx, csv)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Importadas)
	assert.Equal(t, 1, resp.Omitidas)
	require.Len(t, resp.Detalle, 1)
	// SKU comparison ignores case.
	assert.Equal(t, "sku duplicado", resp.Detalle[0].Motivo)
}

func TestExportarProductosReflejaBusqueda(t *testing.T) {
	svc, _, _ := buildProductoSvc()
	ctx := context.Background()
	crearProducto(t, svc, "CL-5", 10, 3)

	_, err := svc.Crear(ctx, &dto.CrearProductoRequest{
		SKU: "JB-1", Nombre: "Jabon liquido", Unidad: "litro",
	})
	require.NoError(t, err)

	salida, err := svc.Exportar(ctx, &dto.FiltroListado{Buscar: "jabon"})
	require.NoError(t, err)
	assert.Contains(t, salida, "JB-1")
	assert.NotContains(t, salida, "CL-5")
}
