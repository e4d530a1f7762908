package usecase

import (
	"context"
	"time"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/logging"
)

const defaultPollInterval = time.Second

// PollKeyboardStatusUseCase polls the device soft keyboard state on a fixed
// interval from a background goroutine. Results cross to the UI loop only
// through the channel passed to Run.
type PollKeyboardStatusUseCase struct {
	probe    port.KeyboardStatusProbe
	interval time.Duration
}

// NewPollKeyboardStatusUseCase creates a poller.
func NewPollKeyboardStatusUseCase(probe port.KeyboardStatusProbe, interval time.Duration) *PollKeyboardStatusUseCase {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &PollKeyboardStatusUseCase{probe: probe, interval: interval}
}

// Run polls until ctx is done, sending the state on out whenever it changes
// (the first observation is always sent). Probe errors count as "hidden".
func (uc *PollKeyboardStatusUseCase) Run(ctx context.Context, out chan<- bool) error {
	log := logging.FromContext(ctx)
	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	var last, known bool
	for {
		visible, err := uc.probe.SoftKeyboardVisible(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Debug().Err(err).Msg("soft keyboard probe failed")
			visible = false
		}

		if !known || visible != last {
			select {
			case out <- visible:
				last, known = visible, true
			case <-ctx.Done():
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
