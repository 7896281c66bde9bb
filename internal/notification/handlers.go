package notification

import (
	"context"
	"fmt"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

// RegisterEventHandlers subscribes the mailer to the domain events that
// trigger an email. Send failures surface as handler errors, which the bus
// logs and drops; they never reach the request path.
func RegisterEventHandlers(bus *events.EventBus, mailer *Mailer) {
	bus.Subscribe(events.EventTypeHRRegistered, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.HRRegisteredEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", event.EventType())
		}
		return mailer.SendVerificationEmail(e.Email, e.Name, e.VerificationToken)
	})

	bus.Subscribe(events.EventTypeEmployeeCreated, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.EmployeeCreatedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", event.EventType())
		}
		return mailer.SendCredentialsEmail(e.Email, e.Name, e.EmployeeCode, e.TempPassword, e.CompanyName)
	})

	bus.Subscribe(events.EventTypeTimeOffDecided, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.TimeOffDecidedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", event.EventType())
		}
		return mailer.SendTimeOffDecisionEmail(e.Email, e.Status, e.Reason)
	})
}
