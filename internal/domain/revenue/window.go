package revenue

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Window intervalo semiabierto [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate exige Start < End.
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return fmt.Errorf("%w: start %s debe ser anterior a end %s",
			domain.ErrInvalidRange, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return nil
}

// Contains indica si t cae dentro de la ventana (End excluido).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ValidateAll valida un lote completo; el índice del primer inválido va en el error.
// Un lote vacío es válido.
func ValidateAll(windows []Window) error {
	for i, w := range windows {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("periodo %d: %w", i, err)
		}
	}
	return nil
}

// Period ventanas fijas relativas al instante actual.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Annual  Period = "annual"
)

// ParsePeriod acepta daily, weekly, monthly y annual (sin distinguir mayúsculas).
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Daily, Weekly, Monthly, Annual:
		return p, nil
	}
	return "", fmt.Errorf("%w: periodo desconocido %q", domain.ErrInvalidInput, s)
}

// FixedWindow ventana que contiene now en la zona de now: día, semana (inicia lunes), mes o año.
func FixedWindow(p Period, now time.Time) (Window, error) {
	loc := now.Location()
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case Daily:
		return Window{Start: day, End: day.AddDate(0, 0, 1)}, nil
	case Weekly:
		// time.Weekday: domingo = 0
		offset := (int(now.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case Monthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case Annual:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}
	return Window{}, fmt.Errorf("%w: periodo desconocido %q", domain.ErrInvalidInput, p)
}
