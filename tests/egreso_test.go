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

// ── In-memory EgresoRepository stub ──────────────────────────────────────────

type stubEgresoRepo struct {
	egresos map[uuid.UUID]*model.Egreso
	pagos   map[uuid.UUID]*model.Pago
	orden   []uuid.UUID
}

func newStubEgresoRepo() *stubEgresoRepo {
	return &stubEgresoRepo{
		egresos: make(map[uuid.UUID]*model.Egreso),
		pagos:   make(map[uuid.UUID]*model.Pago),
	}
}

func (r *stubEgresoRepo) Create(_ context.Context, e *model.Egreso) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.egresos[e.ID] = e
	r.orden = append(r.orden, e.ID)
	return nil
}

func (r *stubEgresoRepo) CreateLote(ctx context.Context, lote []*model.Egreso) error {
	for _, e := range lote {
		if err := r.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// hidratar rebuilds the Pagos slice the way Preload would.
func (r *stubEgresoRepo) hidratar(e *model.Egreso) *model.Egreso {
	copia := *e
	copia.Pagos = nil
	for _, p := range r.pagos {
		if p.EgresoID != nil && *p.EgresoID == e.ID {
			copia.Pagos = append(copia.Pagos, *p)
		}
	}
	return &copia
}

func (r *stubEgresoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Egreso, error) {
	e, ok := r.egresos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hidratar(e), nil
}

func (r *stubEgresoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Egreso, error) {
	for _, e := range r.egresos {
		if e.Codigo == codigo {
			return r.hidratar(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEgresoRepo) List(_ context.Context) ([]model.Egreso, error) {
	resultado := make([]model.Egreso, 0, len(r.orden))
	for _, id := range r.orden {
		resultado = append(resultado, *r.hidratar(r.egresos[id]))
	}
	return resultado, nil
}

func (r *stubEgresoRepo) Update(_ context.Context, e *model.Egreso) error {
	r.egresos[e.ID] = e
	return nil
}

func (r *stubEgresoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.egresos, id)
	for i, v := range r.orden {
		if v == id {
			r.orden = append(r.orden[:i], r.orden[i+1:]...)
			break
		}
	}
	return nil
}

// DB is nil for the stub, so services run their transactional paths
// without a real database.
func (r *stubEgresoRepo) DB() *gorm.DB { return nil }

func (r *stubEgresoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Egreso, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubEgresoRepo) AgregarPagoTx(_ *gorm.DB, pago *model.Pago) error {
	if pago.ID == uuid.Nil {
		pago.ID = uuid.New()
	}
	r.pagos[pago.ID] = pago
	return nil
}

func (r *stubEgresoRepo) EliminarPago(_ context.Context, pagoID uuid.UUID) error {
	delete(r.pagos, pagoID)
	return nil
}

var _ repository.EgresoRepository = (*stubEgresoRepo)(nil)

func buildEgresoSvc() (service.EgresoService, *stubEgresoRepo) {
	repo := newStubEgresoRepo()
	return service.NewEgresoService(repo, newStubSuplidorRepo()), repo
}

func crearEgreso(t *testing.T, svc service.EgresoService, monto string) *dto.RegistroFinancieroResponse {
	t.Helper()
	m, err := decimal.NewFromString(monto)
	require.NoError(t, err)
	resp, err := svc.Crear(context.Background(), &dto.CrearRegistroFinancieroRequest{
		Descripcion: "Compra de cloro",
		Monto:       m,
		Fecha:       "2026-03-10",
		Categoria:   "Materia prima",
	}, "ana")
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestBalanceInicialEsElMonto(t *testing.T) {
	svc, _ := buildEgresoSvc()
	resp := crearEgreso(t, svc, "150.00")

	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("150.00")))
	assert.False(t, resp.Saldado)
	assert.Equal(t, "ana", resp.RegistradoPor)
}

func TestAgregarPagoReduceBalance(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()
	resp := crearEgreso(t, svc, "150.00")
	id := uuid.MustParse(resp.ID)

	resp, err := svc.AgregarPago(ctx, id, &dto.AgregarPagoRequest{
		Monto: decimal.RequireFromString("50"),
		Fecha: "2026-03-11",
	}, "luis")
	require.NoError(t, err)

	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("100")))
	require.Len(t, resp.Pagos, 1)
	assert.Equal(t, "luis", resp.Pagos[0].RegistradoPor)
}

func TestPagoNoPuedeExcederBalance(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()
	resp := crearEgreso(t, svc, "100.00")
	id := uuid.MustParse(resp.ID)

	_, err := svc.AgregarPago(ctx, id, &dto.AgregarPagoRequest{
		Monto: decimal.RequireFromString("100.01"),
		Fecha: "2026-03-11",
	}, "ana")
	assert.ErrorIs(t, err, service.ErrPagoExcedeBalance)

	// Balance untouched after the rejected payment.
	actual, err := svc.Obtener(ctx, id)
	require.NoError(t, err)
	assert.True(t, actual.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestSaldadoConCentavoDeTolerancia(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()
	resp := crearEgreso(t, svc, "100.00")
	id := uuid.MustParse(resp.ID)

	resp, err := svc.AgregarPago(ctx, id, &dto.AgregarPagoRequest{
		Monto: decimal.RequireFromString("99.99"),
		Fecha: "2026-03-11",
	}, "ana")
	require.NoError(t, err)

	// Remaining 0.01 counts as settled.
	assert.True(t, resp.Saldado)
	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("0.01")))
}

func TestPendientesExcluyeSaldados(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()

	pendiente := crearEgreso(t, svc, "200.00")
	saldado := crearEgreso(t, svc, "50.00")

	_, err := svc.AgregarPago(ctx, uuid.MustParse(saldado.ID), &dto.AgregarPagoRequest{
		Monto: decimal.RequireFromString("50"),
		Fecha: "2026-03-11",
	}, "ana")
	require.NoError(t, err)

	lista, err := svc.Pendientes(ctx, &dto.FiltroListado{})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, pendiente.ID, lista[0].ID)

	// The full list still shows both.
	todos, err := svc.Listar(ctx, &dto.FiltroListado{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestEliminarPagoRestauraBalance(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()
	resp := crearEgreso(t, svc, "80.00")
	id := uuid.MustParse(resp.ID)

	conPago, err := svc.AgregarPago(ctx, id, &dto.AgregarPagoRequest{
		Monto: decimal.RequireFromString("30"),
		Fecha: "2026-03-11",
	}, "ana")
	require.NoError(t, err)
	require.Len(t, conPago.Pagos, 1)

	restaurado, err := svc.EliminarPago(ctx, id, uuid.MustParse(conPago.Pagos[0].ID))
	require.NoError(t, err)
	assert.True(t, restaurado.Balance.Equal(decimal.RequireFromString("80.00")))
	assert.Empty(t, restaurado.Pagos)
}

func TestImportarEgresosCoercionaYOmiteDuplicados(t *testing.T) {
	svc, repo := buildEgresoSvc()
	ctx := context.Background()

	csv := "codigo,descripcion,monto,fecha,categoria\n" +
		"EGR-1,Renta,1200.50,2026-03-01,Servicios\n" +
		"EGR-1,Renta repetida,1200.50,2026-03-01,Servicios\n" +
		",Compra sin codigo,abc,fecha-mala,\n"

	resp, err := svc.Importar(ctx, csv, "ana")
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalFilas)
	assert.Equal(t, 2, resp.Importadas)
	assert.Equal(t, 1, resp.Omitidas)

	lista, _ := repo.List(ctx)
	require.Len(t, lista, 2)

	// Malformed cells got their typed defaults instead of failing the row.
	sinCodigo := lista[1]
	assert.True(t, sinCodigo.Monto.IsZero())
	assert.Equal(t, "Otro", sinCodigo.Categoria)
	assert.NotEmpty(t, sinCodigo.Codigo)
	assert.Equal(t, "ana", sinCodigo.RegistradoPor)
}

func TestListarEgresosPorRangoYCategoria(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()

	csv := "codigo,descripcion,monto,fecha,categoria\n" +
		"E-1,Renta enero,100,2026-01-15,Servicios\n" +
		"E-2,Renta febrero,100,2026-02-15,Servicios\n" +
		"E-3,Cloro febrero,100,2026-02-20,Materia prima\n"
	_, err := svc.Importar(ctx, csv, "ana")
	require.NoError(t, err)

	lista, err := svc.Listar(ctx, &dto.FiltroListado{
		Desde:     "2026-02-01",
		Hasta:     "2026-02-28",
		Categoria: "Servicios",
	})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Renta febrero", lista[0].Descripcion)

	// The "all" sentinel disables the category filter.
	lista, err = svc.Listar(ctx, &dto.FiltroListado{Desde: "2026-02-01", Categoria: "all"})
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func TestMontoNoPositivoEsRechazado(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()

	_, err := svc.Crear(ctx, &dto.CrearRegistroFinancieroRequest{
		Descripcion: "Monto negativo",
		Monto:       decimal.RequireFromString("-100"),
		Fecha:       "2026-03-10",
	}, "ana")
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	resp := crearEgreso(t, svc, "100.00")
	id := uuid.MustParse(resp.ID)

	// A negative payment would inflate the balance; zero is pointless.
	for _, monto := range []string{"-50", "0"} {
		_, err = svc.AgregarPago(ctx, id, &dto.AgregarPagoRequest{
			Monto: decimal.RequireFromString(monto),
			Fecha: "2026-03-11",
		}, "ana")
		assert.ErrorIs(t, err, service.ErrMontoInvalido)
	}

	actual, err := svc.Obtener(ctx, id)
	require.NoError(t, err)
	assert.True(t, actual.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestOrdenarEgresosPorSuplidor(t *testing.T) {
	svc, repo := buildEgresoSvc()
	ctx := context.Background()

	zeta := &model.Suplidor{ID: uuid.New(), Nombre: "Zeta Quimica"}
	alfa := &model.Suplidor{ID: uuid.New(), Nombre: "Alfa Cloro"}
	for _, e := range []*model.Egreso{
		{ID: uuid.New(), Codigo: "E-1", Descripcion: "Compra zeta",
			Monto: decimal.RequireFromString("10"), Categoria: "Otro",
			SuplidorID: &zeta.ID, Suplidor: zeta, RegistradoPor: "ana"},
		{ID: uuid.New(), Codigo: "E-2", Descripcion: "Sin suplidor",
			Monto: decimal.RequireFromString("10"), Categoria: "Otro",
			RegistradoPor: "ana"},
		{ID: uuid.New(), Codigo: "E-3", Descripcion: "Compra alfa",
			Monto: decimal.RequireFromString("10"), Categoria: "Otro",
			SuplidorID: &alfa.ID, Suplidor: alfa, RegistradoPor: "ana"},
	} {
		require.NoError(t, repo.Create(ctx, e))
	}

	asc, err := svc.Listar(ctx, &dto.FiltroListado{Orden: "suplidor"})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "Alfa Cloro", asc[0].Contacto)
	assert.Equal(t, "Zeta Quimica", asc[1].Contacto)
	assert.Equal(t, "Sin suplidor", asc[2].Descripcion) // missing key sorts last

	desc, err := svc.Listar(ctx, &dto.FiltroListado{Orden: "suplidor", Dir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Zeta Quimica", desc[0].Contacto)
	assert.Equal(t, "Alfa Cloro", desc[1].Contacto)
	assert.Equal(t, "Sin suplidor", desc[2].Descripcion)
}

func TestExportarEgresosUsaVistaFiltrada(t *testing.T) {
	svc, _ := buildEgresoSvc()
	ctx := context.Background()

	csv := "codigo,descripcion,monto,fecha,categoria\n" +
		"E-1,Renta,100,2026-01-15,Servicios\n" +
		"E-2,Cloro,100,2026-02-20,Materia prima\n"
	_, err := svc.Importar(ctx, csv, "ana")
	require.NoError(t, err)

	salida, err := svc.Exportar(ctx, &dto.FiltroListado{Categoria: "Servicios"})
	require.NoError(t, err)
	assert.Contains(t, salida, "Renta")
	assert.NotContains(t, salida, "Cloro")

	_, err = svc.Exportar(ctx, &dto.FiltroListado{Categoria: "Nomina"})
	assert.ErrorIs(t, err, service.ErrSinRegistros)
}
