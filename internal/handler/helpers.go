package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"gestionhomeclean/internal/apierror"
	"gestionhomeclean/internal/csvio"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/middleware"
	"gestionhomeclean/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindFiltro binds the shared list/export query-string filters.
func bindFiltro(c *gin.Context) (*dto.FiltroListado, bool) {
	var filtro dto.FiltroListado
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return nil, false
	}
	return &filtro, true
}

// leerArchivo reads the uploaded CSV from the "archivo" multipart field.
// Any read failure is the caller's fault as far as the API is concerned.
func leerArchivo(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return "", false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return "", false
	}
	defer f.Close()

	contenido, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return "", false
	}
	return string(contenido), true
}

// descargarCSV writes the export with its per-domain filename. The charset
// parameter plus the BOM already inside contenido keep spreadsheet apps
// from mangling accented characters.
func descargarCSV(c *gin.Context, nombre, contenido string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nombre))
	c.Data(http.StatusOK, "text/csv;charset=utf-8", []byte(contenido))
}

// responderError maps service and CSV errors to HTTP responses. Unknown
// errors go through the error middleware as a 500.
func responderError(c *gin.Context, err error) {
	var faltantes *csvio.ErrorColumnasFaltantes
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("Registro no encontrado"))
	case errors.Is(err, service.ErrCodigoDuplicado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSinRegistros):
		c.JSON(http.StatusConflict, apierror.New("No hay registros para exportar"))
	case errors.Is(err, service.ErrPagoExcedeBalance),
		errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrStockNegativo):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusUnauthorized, apierror.New("Credenciales invalidas"))
	case errors.Is(err, service.ErrUsuarioInactivo):
		c.JSON(http.StatusForbidden, apierror.New("Usuario desactivado"))
	case errors.Is(err, csvio.ErrEntradaVacia):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &faltantes):
		c.JSON(http.StatusBadRequest, apierror.NewImport(faltantes.Error(), faltantes.Columnas))
	default:
		_ = c.Error(err)
	}
}

// usuarioActual returns the username from the validated JWT.
func usuarioActual(c *gin.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.Username
	}
	return ""
}
