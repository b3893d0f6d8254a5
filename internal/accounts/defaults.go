package accounts

import (
	"strings"

	"github.com/ajustes-contables/rt6/internal/model"
)

// DefaultChart returns the default chart of accounts for an entity type.
// Parent links are left empty; the hierarchy is derived from codes.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "sociedad_anonima", "srl":
		return sociedadChart()
	default:
		return sociedadChart()
	}
}

type chartRow struct {
	code   string
	name   string
	kind   model.AccountKind
	rubro  string
	header bool
	contra bool
}

func sociedadChart() []model.Account {
	rows := []chartRow{
		{"1", "Activo", model.KindAsset, "", true, false},
		{"1.1", "Activo corriente", model.KindAsset, "", true, false},
		{"1.1.01", "Caja y bancos", model.KindAsset, "Caja y bancos", true, false},
		{"1.1.01.01", "Caja", model.KindAsset, "Caja y bancos", false, false},
		{"1.1.01.02", "Banco cuenta corriente", model.KindAsset, "Caja y bancos", false, false},
		{"1.1.01.03", "Caja moneda extranjera", model.KindAsset, "Caja y bancos", false, false},
		{"1.1.02", "Créditos por ventas", model.KindAsset, "Créditos por ventas", true, false},
		{"1.1.02.01", "Deudores por ventas", model.KindAsset, "Créditos por ventas", false, false},
		{"1.1.04", "Bienes de cambio", model.KindAsset, "Bienes de cambio", true, false},
		{"1.1.04.01", "Mercaderías", model.KindAsset, "Bienes de cambio", false, false},
		{"1.2", "Activo no corriente", model.KindAsset, "", true, false},
		{"1.2.01", "Bienes de uso", model.KindAsset, "Bienes de uso", true, false},
		{"1.2.01.01", "Inmuebles", model.KindAsset, "Bienes de uso", false, false},
		{"1.2.01.02", "Muebles y útiles", model.KindAsset, "Bienes de uso", false, false},
		{"1.2.01.04", "Rodados", model.KindAsset, "Bienes de uso", false, false},
		{"1.2.01.91", "Amortización acumulada rodados", model.KindAsset, "Bienes de uso", false, true},
		{"2", "Pasivo", model.KindLiability, "", true, false},
		{"2.1", "Pasivo corriente", model.KindLiability, "", true, false},
		{"2.1.01", "Deudas comerciales", model.KindLiability, "Deudas comerciales", true, false},
		{"2.1.01.01", "Proveedores", model.KindLiability, "Deudas comerciales", false, false},
		{"2.1.02", "Deudas fiscales", model.KindLiability, "Deudas fiscales", true, false},
		{"2.1.02.01", "IVA a pagar", model.KindLiability, "Deudas fiscales", false, false},
		{"2.1.03", "Anticipos de clientes", model.KindLiability, "Anticipos de clientes", true, false},
		{"2.1.03.01", "Anticipos de clientes", model.KindLiability, "Anticipos de clientes", false, false},
		{"3", "Patrimonio neto", model.KindEquity, "", true, false},
		{"3.1", "Aportes de los propietarios", model.KindEquity, "", true, false},
		{"3.1.01", "Capital suscripto", model.KindEquity, "Capital social", false, false},
		{"3.1.02", "Ajuste de capital", model.KindEquity, "Ajuste de capital", false, false},
		{"3.2", "Resultados acumulados", model.KindEquity, "", true, false},
		{"3.2.01", "Reserva legal", model.KindEquity, "Reservas", false, false},
		{"3.2.02", "Resultados no asignados", model.KindEquity, "Resultados no asignados", false, false},
		{"4", "Ingresos", model.KindIncome, "", true, false},
		{"4.1", "Ventas", model.KindIncome, "Ventas", true, false},
		{"4.1.01", "Ventas de mercaderías", model.KindIncome, "Ventas", false, false},
		{"5", "Egresos", model.KindExpense, "", true, false},
		{"5.1", "Costo de ventas", model.KindExpense, "Costo de ventas", true, false},
		{"5.1.01", "Costo de mercaderías vendidas", model.KindExpense, "Costo de ventas", false, false},
		{"5.2", "Gastos de administración", model.KindExpense, "Gastos de administración", true, false},
		{"5.2.01", "Sueldos y jornales", model.KindExpense, "Gastos de administración", false, false},
		{"5.2.02", "Alquileres", model.KindExpense, "Gastos de administración", false, false},
		{"5.3", "Gastos de comercialización", model.KindExpense, "Gastos de comercialización", true, false},
		{"5.3.01", "Publicidad", model.KindExpense, "Gastos de comercialización", false, false},
	}

	chart := make([]model.Account, 0, len(rows))
	for _, r := range rows {
		side := model.DefaultSide(r.kind)
		if r.contra {
			side = model.SideCredit
		}
		chart = append(chart, model.Account{
			ID:         r.code,
			Code:       r.code,
			Name:       r.name,
			Kind:       r.kind,
			Group:      model.DefaultGroup(r.kind),
			Rubro:      r.rubro,
			Level:      strings.Count(r.code, ".") + 1,
			NormalSide: side,
			IsHeader:   r.header,
			IsContra:   r.contra,
		})
	}
	return chart
}
