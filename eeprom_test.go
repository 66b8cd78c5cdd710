package dfoprog

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestCommitEEPROM(t *testing.T) {
	for _, busy := range []int{0, 1, 5} {
		chip := newSimChip()
		chip.busyReads = busy
		p := NewProgrammer(NewTransport(chip), WithPollInterval(time.Millisecond))

		if err := p.CommitEEPROM(context.Background()); err != nil {
			t.Fatalf("busy %d: %v", busy, err)
		}
		// One read per busy poll plus the read that sees the flag clear.
		if chip.statusReads != busy+1 {
			t.Errorf("busy %d: read status %d times, want %d", busy, chip.statusReads, busy+1)
		}
		if len(chip.writes) != 1 || chip.writes[0] != (Register{Offset: RegEEPROMCommand, Value: EEPROMWrite}) {
			t.Errorf("busy %d: unexpected writes %+v", busy, chip.writes)
		}
	}
}

func TestCommitEEPROMTimeout(t *testing.T) {
	chip := newSimChip()
	chip.busyReads = 10
	p := NewProgrammer(NewTransport(chip), WithPollInterval(time.Millisecond), WithMaxPolls(3))

	err := p.CommitEEPROM(context.Background())
	var terr *EepromTimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("got %v, want EepromTimeoutError", err)
	}
	if terr.Polls != 3 || chip.statusReads != 3 {
		t.Errorf("gave up after %d polls and %d reads, want 3", terr.Polls, chip.statusReads)
	}
}

func TestCommitEEPROMTransportFailure(t *testing.T) {
	t.Run("command", func(t *testing.T) {
		chip := newSimChip()
		chip.failWrite[RegEEPROMCommand] = true
		err := NewProgrammer(NewTransport(chip)).CommitEEPROM(context.Background())
		var cerr *EepromCommitError
		if !errors.As(err, &cerr) {
			t.Fatalf("got %v, want EepromCommitError", err)
		}
		if chip.statusReads != 0 {
			t.Errorf("polled %d times after a failed command", chip.statusReads)
		}
	})
	t.Run("poll", func(t *testing.T) {
		chip := newSimChip()
		chip.failRead = true
		err := NewProgrammer(NewTransport(chip)).CommitEEPROM(context.Background())
		var cerr *EepromCommitError
		if !errors.As(err, &cerr) {
			t.Fatalf("got %v, want EepromCommitError", err)
		}
		if !errors.Is(err, errBus) {
			t.Errorf("error %v does not wrap the bus error", err)
		}
	})
}

func TestCommitEEPROMCancelledWhilePolling(t *testing.T) {
	chip := newSimChip()
	chip.busyReads = 1000
	p := NewProgrammer(NewTransport(chip), WithPollInterval(time.Hour), WithMaxPolls(1000))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.CommitEEPROM(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want %v", err, context.DeadlineExceeded)
	}
	if chip.statusReads != 1 {
		t.Errorf("read status %d times, want 1", chip.statusReads)
	}
}

func TestCommitStateString(t *testing.T) {
	for s, want := range map[CommitState]string{
		CommitIdle:      "idle",
		CommitIssued:    "commit issued",
		CommitPolling:   "polling",
		CommitDone:      "done",
		CommitState(42): "invalid commit state",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d: got %q, want %q", int(s), got, want)
		}
	}
}
