package search

import (
	"context"
	"errors"
	"strings"

	"silant-servicebook-web/internal/client"
	"silant-servicebook-web/internal/model"
)

const (
	EmptySerialMessage = "Пожалуйста, введите заводской номер"
	NotFoundMessage    = "Машина с таким номером не найдена"
	FailedMessage      = "Ошибка соединения с сервером"
)

// Finder looks a machine up by serial number.
type Finder interface {
	SearchMachine(ctx context.Context, serial string) (*model.Machine, error)
}

// Result is the outcome of one lookup: exactly one of Machine and Error is set,
// or neither when no search was made.
type Result struct {
	Serial  string
	Machine *model.Machine
	Error   string
}

// Fields returns the public specification rows of the found machine.
func (r Result) Fields() []model.Field {
	if r.Machine == nil {
		return nil
	}
	return r.Machine.SpecFields()
}

// Lookup runs a search for serial.
func Lookup(ctx context.Context, f Finder, serial string) (Result, error) {
	serial = strings.TrimSpace(serial)
	res := Result{Serial: serial}
	if serial == "" {
		res.Error = EmptySerialMessage
		return res, nil
	}

	m, err := f.SearchMachine(ctx, serial)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			res.Error = NotFoundMessage
			return res, nil
		}
		res.Error = FailedMessage
		return res, err
	}
	res.Machine = m
	return res, nil
}
