package event

import (
	"context"
	"time"
)

const RoutingKeyScheduleGenerated = "schedule.generated"

// ScheduleGeneratedEvent summarizes a computed schedule. The installments themselves are not part
// of the event.
type ScheduleGeneratedEvent struct {
	Principal        float64   `json:"principal"`
	TenureMonths     int       `json:"tenure"`
	InterestRate     float64   `json:"interestRate"`
	Frequency        string    `json:"emiFrequency"`
	MoratoriumMonths int       `json:"moratorium"`
	DisbursementDate string    `json:"disbursementDate"`
	Periods          int       `json:"periods"`
	EMI              float64   `json:"emi"`
	TotalInterest    float64   `json:"totalInterest"`
	TotalPaidAmount  float64   `json:"totalPaidAmount"`
	FirstDueDate     string    `json:"firstDueDate,omitempty"`
	LastDueDate      string    `json:"lastDueDate,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

type EventPublisher interface {
	PublishScheduleGenerated(ctx context.Context, event ScheduleGeneratedEvent) error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. Used when RabbitMQ is disabled.
func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishScheduleGenerated(context.Context, ScheduleGeneratedEvent) error {
	return nil
}
