package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-ctrl-core/drive"
	"dragon-ctrl-core/robot"
	"dragon-ctrl-core/utils"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	o := NewLogObserver(utils.NewWriterLogger(&buf, utils.INFO), 2)

	o.Observe(robot.Snapshot{Cycle: 1, Mode: robot.Teleop})
	o.Observe(robot.Snapshot{Cycle: 2, Mode: robot.Teleop, Command: drive.Command{Left: 0.5, Right: 0.25}})
	o.Observe(robot.Snapshot{Cycle: 3, Mode: robot.Teleop, DriveMode: drive.ModeArcade})

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "mode teleop"))
	assert.Contains(t, out, "cycle=2 mode=teleop cmd=(0.50,0.25)")
	assert.NotContains(t, out, "cycle=3")
	assert.Contains(t, out, "drive mode Arcade Drive")
}

func TestFanout(t *testing.T) {
	var a, b []uint64
	f := Fanout{
		robot.ObserverFunc(func(s robot.Snapshot) { a = append(a, s.Cycle) }),
		robot.ObserverFunc(func(s robot.Snapshot) { b = append(b, s.Cycle) }),
	}
	f.Observe(robot.Snapshot{Cycle: 7})
	assert.Equal(t, []uint64{7}, a)
	assert.Equal(t, []uint64{7}, b)
}

func TestDashboardDropsWhenFull(t *testing.T) {
	p := NewDashboardPublisher("http://127.0.0.1:1", 1, nil)
	for i := 1; i <= queueSize+8; i++ {
		p.Observe(robot.Snapshot{Cycle: uint64(i)})
	}
	posted, dropped := p.Stats()
	assert.Zero(t, posted)
	assert.Equal(t, uint64(8), dropped)
}

func TestDashboardSamplesEveryN(t *testing.T) {
	p := NewDashboardPublisher("http://127.0.0.1:1", 5, nil)
	for i := 1; i <= 20; i++ {
		p.Observe(robot.Snapshot{Cycle: uint64(i)})
	}
	assert.Len(t, p.queue, 4)
}

func TestDashboardPosts(t *testing.T) {
	var mu sync.Mutex
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cycles" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		got = append(got, body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	p := NewDashboardPublisher(srv.URL, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	p.Observe(robot.Snapshot{Cycle: 1, Mode: robot.Autonomous, Command: drive.Command{Left: 0.5, Right: 0.5}})

	require.Eventually(t, func() bool {
		posted, _ := p.Stats()
		return posted == 1
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "autonomous", got[0]["mode"])
	assert.Equal(t, 0.5, got[0]["left"])
}
