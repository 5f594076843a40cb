package forms

import (
	"context"
	"errors"

	"silant-servicebook-web/internal/client"
	"silant-servicebook-web/internal/model"
)

// Generic failure messages, used when the server gave no field-level errors.
const (
	MaintenanceFailedMessage = "Не удалось сохранить данные. Проверьте соединение."
	ComplaintFailedMessage   = "Не удалось сохранить данные."
)

// Hooks are the parent's callbacks, run in order after a successful submission.
type Hooks struct {
	OnSuccess func()
	OnClose   func()
}

func (h Hooks) fire() {
	if h.OnSuccess != nil {
		h.OnSuccess()
	}
	if h.OnClose != nil {
		h.OnClose()
	}
}

// Creator is the subset of the API client that creates records.
type Creator interface {
	CreateMaintenance(ctx context.Context, in model.MaintenanceInput) (*model.Maintenance, error)
	CreateComplaint(ctx context.Context, in model.ComplaintInput) (*model.Complaint, error)
}

// errorText turns a submission error into the banner text.
func errorText(err error, generic string) string {
	var ve *client.ValidationError
	if errors.As(err, &ve) {
		if msg := ve.Message(); msg != "" {
			return msg
		}
	}
	return generic
}
