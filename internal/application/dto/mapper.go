package dto

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// FromOrder convierte la orden de dominio a su respuesta HTTP.
func FromOrder(o *entity.PurchaseOrder) *OrderResponse {
	out := &OrderResponse{
		ID:               o.ID,
		Number:           o.Number,
		Company:          o.Company,
		QuotationNumber:  o.QuotationNumber,
		DeliveryLocation: o.DeliveryLocation,
		SupplierID:       o.SupplierID,
		Charge:           o.Charge,
		PaymentTerms:     o.PaymentTerms,
		DeliveryTerm:     o.DeliveryTerm,
		Comments:         o.Comments,
		Status:           string(o.Status),
		CreatedBy:        o.CreatedBy,
		NetTotal:         o.NetTotal(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Lines:            make([]OrderLineResponse, 0, len(o.Lines)),
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		out.Lines = append(out.Lines, OrderLineResponse{
			ID:        l.ID,
			Position:  l.Position,
			ProductID: l.Product.ProductID,
			Code:      l.Product.Code,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total(),
			Received:  l.Received(),
			Pending:   l.Pending,
		})
	}
	return out
}

// FromMovement convierte un movimiento del libro.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		Motive:        string(m.Motive),
		OrderID:       m.OrderID,
		EquipmentID:   m.EquipmentID,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost(),
		UpdatePrice:   m.UpdatePrice,
		StockAfter:    m.StockAfter,
		Comment:       m.Comment,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// FromMovements convierte una lista de movimientos; nunca devuelve nil.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromProduct convierte un producto.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Type:            p.Type,
		PurchasePrice:   p.PurchasePrice,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		StockValue:      p.StockValue(),
		BelowMinimum:    p.IsBelowMinimum(),
		Location:        p.Location,
		Consignment:     p.Consignment,
		ConsignmentName: p.ConsignmentName,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromMaterialRequest convierte una solicitud de materiales.
func FromMaterialRequest(r *entity.MaterialRequest) *MaterialRequestResponse {
	out := &MaterialRequestResponse{
		ID:              r.ID,
		Number:          r.Number,
		Folio:           r.Folio,
		QuotationNumber: r.QuotationNumber,
		RequesterName:   r.RequesterName,
		Comment:         r.Comment,
		Status:          string(r.Status),
		CreatedBy:       r.CreatedBy,
		DecidedBy:       r.DecidedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Lines:           make([]CreateMaterialRequestLine, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, CreateMaterialRequestLine{
			Product:        l.Product,
			Quantity:       l.Quantity,
			Motive:         l.Motive,
			WarehouseStock: l.WarehouseStock,
		})
	}
	return out
}

// FromAlert convierte una alerta.
func FromAlert(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:                a.ID,
		Type:              string(a.Type),
		Message:           a.Message,
		Status:            string(a.Status),
		OriginID:          a.OriginID,
		ResolutionComment: a.ResolutionComment,
		ResolvedBy:        a.ResolvedBy,
		CreatedAt:         a.CreatedAt,
		ResolvedAt:        a.ResolvedAt,
	}
}
