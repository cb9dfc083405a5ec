package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// changeSet campos admitidos de un patch. nil = no se toca.
type changeSet struct {
	serviceStatus *entity.ServiceStatus
	paymentStatus *entity.PaymentStatus
	paymentMethod *entity.PaymentMethod
	therapistName *string
	roomName      *string
	notes         *string
	guestName     *string
	totalAmount   *decimal.Decimal
}

// admitPatch valida campo por campo contra el rol del actor y el estado actual.
// No muta existing. Devuelve ErrInvalidValue, ErrForbidden o ErrNoOp según la primera regla que falle.
func admitPatch(existing *entity.Transaction, in dto.PatchTransactionRequest, actor entity.Actor) (*changeSet, error) {
	cs := &changeSet{}
	n := 0

	if in.ServiceStatus != nil && *in.ServiceStatus != "" {
		s, ok := entity.ParseServiceStatus(*in.ServiceStatus)
		if !ok {
			return nil, domain.ErrInvalidValue
		}
		cs.serviceStatus = &s
		n++
	}

	if in.PaymentStatus != nil && *in.PaymentStatus != "" {
		p, ok := entity.ParsePaymentStatus(*in.PaymentStatus)
		if !ok {
			return nil, domain.ErrInvalidValue
		}
		// staff no puede devolver a unpaid una transacción ya cobrada o de cortesía
		if !actor.IsAdmin() && existing.PaymentStatus.Settled() && p == entity.PaymentUnpaid {
			return nil, domain.ErrForbidden
		}
		cs.paymentStatus = &p
		n++
	}

	if in.PaymentMethod != nil && *in.PaymentMethod != "" {
		m, ok := entity.ParsePaymentMethod(*in.PaymentMethod)
		if !ok {
			return nil, domain.ErrInvalidValue
		}
		cs.paymentMethod = &m
		n++
	}

	for _, f := range []struct {
		in  *string
		dst **string
	}{
		{in.TherapistName, &cs.therapistName},
		{in.RoomName, &cs.roomName},
		{in.Notes, &cs.notes},
		{in.GuestName, &cs.guestName},
	} {
		if f.in != nil {
			v := *f.in
			*f.dst = &v
			n++
		}
	}

	if in.TotalAmount.Present && in.TotalAmount.Valid {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		if !entity.ValidAmount(in.TotalAmount.Value) {
			return nil, domain.ErrInvalidValue
		}
		t := in.TotalAmount.Value
		cs.totalAmount = &t
		n++
	}

	if n == 0 {
		return nil, domain.ErrNoOp
	}
	return cs, nil
}

// apply copia los campos admitidos sobre t.
func (cs *changeSet) apply(t *entity.Transaction) {
	if cs.serviceStatus != nil {
		t.ServiceStatus = *cs.serviceStatus
	}
	if cs.paymentStatus != nil {
		t.PaymentStatus = *cs.paymentStatus
	}
	if cs.paymentMethod != nil {
		t.PaymentMethod = *cs.paymentMethod
	}
	if cs.therapistName != nil {
		t.TherapistName = *cs.therapistName
	}
	if cs.roomName != nil {
		t.RoomName = *cs.roomName
	}
	if cs.notes != nil {
		t.Notes = *cs.notes
	}
	if cs.guestName != nil {
		t.GuestName = *cs.guestName
	}
	if cs.totalAmount != nil {
		t.TotalAmount = *cs.totalAmount
	}
}

// meta campos cambiados y sus valores nuevos, para la bitácora.
func (cs *changeSet) meta() map[string]any {
	m := map[string]any{}
	if cs.serviceStatus != nil {
		m["serviceStatus"] = string(*cs.serviceStatus)
	}
	if cs.paymentStatus != nil {
		m["paymentStatus"] = string(*cs.paymentStatus)
	}
	if cs.paymentMethod != nil {
		m["paymentMethod"] = string(*cs.paymentMethod)
	}
	if cs.therapistName != nil {
		m["therapistName"] = *cs.therapistName
	}
	if cs.roomName != nil {
		m["roomName"] = *cs.roomName
	}
	if cs.notes != nil {
		m["notes"] = *cs.notes
	}
	if cs.guestName != nil {
		m["guestName"] = *cs.guestName
	}
	if cs.totalAmount != nil {
		m["totalAmount"] = cs.totalAmount.InexactFloat64()
	}
	return m
}
