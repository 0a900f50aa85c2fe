package tests

import (
	"context"
	"strings"
	"testing"

	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/model"
	"gestionhomeclean/internal/repository"
	"gestionhomeclean/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory SuplidorRepository stub ────────────────────────────────────────

type stubSuplidorRepo struct {
	suplidores map[uuid.UUID]*model.Suplidor
	orden      []uuid.UUID
}

func newStubSuplidorRepo() *stubSuplidorRepo {
	return &stubSuplidorRepo{suplidores: make(map[uuid.UUID]*model.Suplidor)}
}

func (r *stubSuplidorRepo) Create(_ context.Context, s *model.Suplidor) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suplidores[s.ID] = s
	r.orden = append(r.orden, s.ID)
	return nil
}

func (r *stubSuplidorRepo) CreateLote(ctx context.Context, lote []*model.Suplidor) error {
	for _, s := range lote {
		if err := r.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubSuplidorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Suplidor, error) {
	s, ok := r.suplidores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSuplidorRepo) FindByCodigo(_ context.Context, codigo string) (*model.Suplidor, error) {
	for _, s := range r.suplidores {
		if s.Codigo == codigo {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSuplidorRepo) List(_ context.Context) ([]model.Suplidor, error) {
	resultado := make([]model.Suplidor, 0, len(r.orden))
	for _, id := range r.orden {
		resultado = append(resultado, *r.suplidores[id])
	}
	return resultado, nil
}

func (r *stubSuplidorRepo) Update(_ context.Context, s *model.Suplidor) error {
	r.suplidores[s.ID] = s
	return nil
}

func (r *stubSuplidorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suplidores, id)
	for i, v := range r.orden {
		if v == id {
			r.orden = append(r.orden[:i], r.orden[i+1:]...)
			break
		}
	}
	return nil
}

var _ repository.SuplidorRepository = (*stubSuplidorRepo)(nil)

func buildSuplidorSvc() (service.SuplidorService, *stubSuplidorRepo) {
	repo := newStubSuplidorRepo()
	return service.NewSuplidorService(repo), repo
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearSuplidorAsignaCodigoUnico(t *testing.T) {
	svc, _ := buildSuplidorSvc()
	ctx := context.Background()

	a, err := svc.Crear(ctx, &dto.CrearContactoRequest{Nombre: "Quimicos SA"})
	require.NoError(t, err)
	b, err := svc.Crear(ctx, &dto.CrearContactoRequest{Nombre: "Detergentes RD"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.Codigo, "SUP-"))
	assert.NotEqual(t, a.Codigo, b.Codigo)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestImportarSuplidoresGeneraCodigosParaFilasSinID(t *testing.T) {
	svc, repo := buildSuplidorSvc()
	ctx := context.Background()

	csv := "codigo,nombre,email,telefono,direccion\n" +
		",Quimicos SA,q@sa.do,809-555-0001,Santo Domingo\n" +
		",Detergentes RD,d@rd.do,809-555-0002,Santiago\n"

	resp, err := svc.Importar(ctx, csv)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalFilas)
	assert.Equal(t, 2, resp.Importadas)
	assert.Equal(t, 0, resp.Omitidas)

	lista, _ := repo.List(ctx)
	require.Len(t, lista, 2)
	assert.NotEmpty(t, lista[0].Codigo)
	assert.NotEqual(t, lista[0].Codigo, lista[1].Codigo)
}

func TestImportarSuplidoresOmiteDuplicados(t *testing.T) {
	svc, repo := buildSuplidorSvc()
	ctx := context.Background()

	repo.Create(ctx, &model.Suplidor{ID: uuid.New(), Codigo: "SUP-EXISTE", Nombre: "Ya estaba"})

	csv := "codigo,nombre,email,telefono,direccion\n" +
		"SUP-EXISTE,Intruso,i@x.do,809,SD\n" +
		"SUP-NUEVO,Nuevo,n@x.do,809,SD\n" +
		"SUP-NUEVO,Repetido en archivo,r@x.do,809,SD\n"

	resp, err := svc.Importar(ctx, csv)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalFilas)
	assert.Equal(t, 1, resp.Importadas)
	assert.Equal(t, 2, resp.Omitidas)
	require.Len(t, resp.Detalle, 2)
	assert.Equal(t, "codigo duplicado", resp.Detalle[0].Motivo)

	// The existing record was not overwritten.
	existente, err := repo.FindByCodigo(ctx, "SUP-EXISTE")
	require.NoError(t, err)
	assert.Equal(t, "Ya estaba", existente.Nombre)
}

func TestImportarSuplidoresColumnasFaltantes(t *testing.T) {
	svc, repo := buildSuplidorSvc()

	_, err := svc.Importar(context.Background(), "nombre,email\nana,a@b.c\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faltan columnas requeridas")

	// Header failure rejects the whole batch.
	lista, _ := repo.List(context.Background())
	assert.Empty(t, lista)
}

func TestExportarSuplidoresVacioEsError(t *testing.T) {
	svc, _ := buildSuplidorSvc()
	_, err := svc.Exportar(context.Background(), &dto.FiltroListado{})
	assert.ErrorIs(t, err, service.ErrSinRegistros)
}

func TestExportarSuplidoresRoundTrip(t *testing.T) {
	svc, _ := buildSuplidorSvc()
	ctx := context.Background()

	_, err := svc.Crear(ctx, &dto.CrearContactoRequest{
		Nombre: "Quimicos SA", Email: "q@sa.do", Telefono: "809", Direccion: "SD",
	})
	require.NoError(t, err)

	salida, err := svc.Exportar(ctx, &dto.FiltroListado{})
	require.NoError(t, err)

	resp, err := svc.Importar(ctx, salida)
	require.NoError(t, err)
	// Same codes already exist, so a re-import of the export is a no-op.
	assert.Equal(t, 0, resp.Importadas)
	assert.Equal(t, 1, resp.Omitidas)
}

func TestListarSuplidoresFiltraYOrdena(t *testing.T) {
	svc, _ := buildSuplidorSvc()
	ctx := context.Background()

	for _, nombre := range []string{"Zeta Quimica", "Alfa Cloro", "Beta Quimica"} {
		_, err := svc.Crear(ctx, &dto.CrearContactoRequest{Nombre: nombre})
		require.NoError(t, err)
	}

	resultado, err := svc.Listar(ctx, &dto.FiltroListado{Buscar: "quimica"})
	require.NoError(t, err)
	require.Len(t, resultado, 2)
	// Default order: by name ascending.
	assert.Equal(t, "Beta Quimica", resultado[0].Nombre)
	assert.Equal(t, "Zeta Quimica", resultado[1].Nombre)
}

func TestEliminarSuplidorEsDefinitivo(t *testing.T) {
	svc, repo := buildSuplidorSvc()
	ctx := context.Background()

	creado, err := svc.Crear(ctx, &dto.CrearContactoRequest{Nombre: "Efimero"})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	require.NoError(t, svc.Eliminar(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Eliminar(ctx, id), service.ErrNoEncontrado)
}
