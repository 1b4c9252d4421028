package notify

import (
	"context"
	"errors"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/Enzo-Nunes/SkyForge/internal/ports"
)

// Multi reparte cada ciclo a varios notifiers. Todos reciben los records
// aunque alguno falle; los errores se juntan.
type Multi struct {
	notifiers []ports.Notifier
}

// NewMulti combina los notifiers dados.
func NewMulti(notifiers ...ports.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify entrega los records a todos los notifiers.
func (m *Multi) Notify(ctx context.Context, records []domain.ProfitRecord, uptimeSeconds int) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, records, uptimeSeconds); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
