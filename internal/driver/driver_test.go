package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type mockManager struct {
	ticks atomic.Int32
	err   error
}

func (m *mockManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return m.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		errs     []error
		expTicks []int32
		expErr   string
	}{
		"all managers ticked": {
			errs:     []error{nil, nil},
			expTicks: []int32{1, 1},
		},
		"stops at first error": {
			errs:     []error{errors.New("boom"), nil},
			expTicks: []int32{1, 0},
			expErr:   "boom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var managers []Manager
			var mocks []*mockManager
			for _, err := range tt.errs {
				m := &mockManager{err: err}
				mocks = append(mocks, m)
				managers = append(managers, m)
			}

			err := NewDriver(managers).Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i, m := range mocks {
				testutil.AssertEqual(t, "ticks", m.ticks.Load(), tt.expTicks[i])
			}
		})
	}
}

func TestDriver_Start(t *testing.T) {
	m := &mockManager{}
	d := NewDriver([]Manager{m}, WithTickLength(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.After(2 * time.Second)
	for m.ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("driver did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
