package purchasing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/purchasing"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, purchasing.NormalizeKey("  Filtro ACEITE "), purchasing.NormalizeKey("filtro aceite"))
	assert.Equal(t, purchasing.NormalizeKey("ÑANDÚ"), purchasing.NormalizeKey("ñandú"))
	assert.Equal(t, "", purchasing.NormalizeKey("   "))
}

func TestMatchLine(t *testing.T) {
	p := &entity.Product{ID: "p-1", Code: "FLT-001", Name: "Filtro de aceite"}

	line := func(ref entity.ProductRef) *entity.OrderLine { return &entity.OrderLine{Product: ref} }

	assert.Equal(t, purchasing.MatchByID, purchasing.MatchLine(line(entity.KnownProduct("p-1")), p))
	assert.Equal(t, purchasing.MatchByCode, purchasing.MatchLine(line(entity.FreeTextProduct(" flt-001", "")), p))
	assert.Equal(t, purchasing.MatchByCode, purchasing.MatchLine(line(entity.FreeTextProduct("", "FLT-001")), p))
	assert.Equal(t, purchasing.MatchByName, purchasing.MatchLine(line(entity.FreeTextProduct("", "FILTRO DE ACEITE")), p))
	assert.Equal(t, purchasing.MatchNone, purchasing.MatchLine(line(entity.FreeTextProduct("", "Filtro de aire")), p))
	assert.Equal(t, purchasing.MatchNone, purchasing.MatchLine(line(entity.KnownProduct("p-2")), p))
}

func TestCandidateLines_PrefiereMejorCoincidencia(t *testing.T) {
	p := &entity.Product{ID: "p-1", Code: "FLT-001", Name: "Filtro de aceite"}
	order := &entity.PurchaseOrder{Lines: []entity.OrderLine{
		{Product: entity.FreeTextProduct("", "filtro de aceite")}, // nombre
		{Product: entity.FreeTextProduct("FLT-001", "")},          // código
		{Product: entity.FreeTextProduct("GUA-010", "Guantes")},   // nada
		{Product: entity.FreeTextProduct("flt-001", "Filtro")},    // código
	}}
	assert.Equal(t, []int{1, 3}, purchasing.CandidateLines(order, p))
}

func TestCandidateLines_SinCoincidencia(t *testing.T) {
	p := &entity.Product{ID: "p-1", Code: "FLT-001", Name: "Filtro de aceite"}
	order := &entity.PurchaseOrder{Lines: []entity.OrderLine{
		{Product: entity.FreeTextProduct("GUA-010", "Guantes")},
	}}
	assert.Empty(t, purchasing.CandidateLines(order, p))
}
