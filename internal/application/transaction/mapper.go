package transaction

import (
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// ToResponse mapea la transacción al DTO de salida.
func ToResponse(t *entity.Transaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	lines := make([]dto.ServiceLineResponse, 0, len(t.Services))
	for _, s := range t.Services {
		lines = append(lines, dto.ServiceLineResponse{
			ServiceName:     s.ServiceName,
			DurationMinutes: s.DurationMinutes,
			Amount:          s.Amount,
		})
	}
	return &dto.TransactionResponse{
		ID:              t.ID,
		BusinessDateKey: t.BusinessDateKey,
		StartedAt:       t.StartedAt,
		GuestName:       t.GuestName,
		Services:        lines,
		TotalAmount:     t.TotalAmount,
		TherapistID:     t.TherapistID,
		TherapistName:   t.TherapistName,
		RoomName:        t.RoomName,
		ServiceStatus:   string(t.ServiceStatus),
		PaymentStatus:   string(t.PaymentStatus),
		PaymentMethod:   string(t.PaymentMethod),
		Notes:           t.Notes,
		CreatedByUserID: t.CreatedByUserID,
		Revision:        t.Revision,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToResponses mapea una lista de transacciones.
func ToResponses(list []*entity.Transaction) []*dto.TransactionResponse {
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToResponse(t))
	}
	return out
}
