package events

import (
	"context"
	"errors"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// Fanout reenvía cada evento a todos los publicadores. Un fallo no detiene a los demás.
type Fanout []inventory.EventPublisher

// Publish devuelve los errores de todos los publicadores unidos.
func (f Fanout) Publish(ctx context.Context, event dto.LedgerEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
