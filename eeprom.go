package dfoprog

import (
	"context"
	"time"
)

// CommitState is the progress of an EEPROM commit.
type CommitState int

// EEPROM commit states.
const (
	CommitIdle CommitState = iota
	CommitIssued
	CommitPolling
	CommitDone
)

func (s CommitState) String() string {
	switch s {
	case CommitIdle:
		return "idle"
	case CommitIssued:
		return "commit issued"
	case CommitPolling:
		return "polling"
	case CommitDone:
		return "done"
	default:
		return "invalid commit state"
	}
}

// CommitEEPROM copies the working registers into the chip's EEPROM and waits
// until the chip clears its busy flag. The wait is bounded by MaxPolls reads
// of the status register, PollInterval apart.
func (p *Programmer) CommitEEPROM(ctx context.Context) error {
	state := CommitIdle
	transition := func(next CommitState) {
		pkgLog.Debugf("EEPROM commit: %v -> %v", state, next)
		state = next
	}

	pkgLog.Infof("writing EEPROM...")
	if err := ctx.Err(); err != nil {
		return &EepromCommitError{Err: err}
	}
	if err := p.transport.WriteRegister(RegEEPROMCommand, EEPROMWrite); err != nil {
		return &EepromCommitError{Err: err}
	}
	transition(CommitIssued)

	transition(CommitPolling)
	for polls := 1; ; polls++ {
		status, err := p.transport.ReadRegister(RegStatus)
		if err != nil {
			return &EepromCommitError{Err: err}
		}
		if status&StatusEEPROMBusy == 0 {
			transition(CommitDone)
			pkgLog.Infof("EEPROM written after %d polls", polls)
			return nil
		}
		if polls >= p.options.MaxPolls {
			return &EepromTimeoutError{Polls: polls}
		}

		if err := sleep(ctx, p.options.PollInterval); err != nil {
			return &EepromCommitError{Err: err}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
