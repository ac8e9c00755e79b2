package alerts

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Scanner ejecuta AlertUseCase.Scan periódicamente.
type Scanner struct {
	uc       *AlertUseCase
	interval time.Duration
	log      zerolog.Logger
}

// NewScanner construye el revisor periódico.
func NewScanner(uc *AlertUseCase, interval time.Duration, log zerolog.Logger) *Scanner {
	return &Scanner{uc: uc, interval: interval, log: log}
}

// Run revisa una vez al arrancar y luego en cada intervalo, hasta que ctx se cancele.
// Con interval <= 0 no revisa: solo espera la cancelación.
func (s *Scanner) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if _, err := s.uc.Scan(ctx); err != nil && ctx.Err() == nil {
			s.log.Error().Err(err).Msg("revisión de alertas falló")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
