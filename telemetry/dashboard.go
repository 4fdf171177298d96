package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/calvinmclean/babyapi"
	"github.com/pkg/errors"

	"dragon-ctrl-core/robot"
	"dragon-ctrl-core/utils"
)

const queueSize = 32

// cycleRecord is the dashboard's view of one snapshot.
type cycleRecord struct {
	*babyapi.NilResource

	ID           string    `json:"id"`
	Time         time.Time `json:"time"`
	Cycle        uint64    `json:"cycle"`
	Mode         string    `json:"mode"`
	DriveMode    string    `json:"drive_mode"`
	AutonEnabled bool      `json:"auton_enabled"`
	Left         float64   `json:"left"`
	Right        float64   `json:"right"`
	Wheel        float64   `json:"wheel"`
	Loader       float64   `json:"loader"`
	Align        float64   `json:"align"`
	Line         string    `json:"line"`
	Maneuver     string    `json:"maneuver"`
	Approach     string    `json:"approach"`
	Contact      bool      `json:"contact"`
	LeftDist     float64   `json:"left_dist_ft"`
	RightDist    float64   `json:"right_dist_ft"`
}

func (r cycleRecord) GetID() string { return r.ID }

func newCycleRecord(s robot.Snapshot, now time.Time) *cycleRecord {
	return &cycleRecord{
		Time:         now,
		Cycle:        s.Cycle,
		Mode:         s.Mode.String(),
		DriveMode:    s.DriveMode.String(),
		AutonEnabled: s.AutonEnabled,
		Left:         s.Command.Left,
		Right:        s.Command.Right,
		Wheel:        s.Shooter.Wheel,
		Loader:       s.Shooter.Loader,
		Align:        s.Shooter.Align,
		Line:         s.Line.String(),
		Maneuver:     s.Maneuver.String(),
		Approach:     s.Approach.String(),
		Contact:      s.Contact,
		LeftDist:     s.LeftDist,
		RightDist:    s.RightDist,
	}
}

// DashboardPublisher posts every Nth snapshot to a babyapi /cycles
// collection. Observe only queues; Run does the posting, so a slow
// dashboard never stalls the control loop. Snapshots that do not fit in
// the queue are dropped.
type DashboardPublisher struct {
	client  *babyapi.Client[*cycleRecord]
	log     *utils.Logger
	every   uint64
	queue   chan *cycleRecord
	dropped atomic.Uint64
	posted  atomic.Uint64
	now     func() time.Time
}

func NewDashboardPublisher(addr string, every int, log *utils.Logger) *DashboardPublisher {
	if every < 1 {
		every = 1
	}
	return &DashboardPublisher{
		client: babyapi.NewClient[*cycleRecord](addr, "/cycles"),
		log:    log,
		every:  uint64(every),
		queue:  make(chan *cycleRecord, queueSize),
		now:    time.Now,
	}
}

func (p *DashboardPublisher) Observe(s robot.Snapshot) {
	if s.Cycle%p.every != 0 {
		return
	}
	select {
	case p.queue <- newCycleRecord(s, p.now()):
	default:
		p.dropped.Add(1)
	}
}

// Run posts queued records until ctx is done. Post failures are logged
// and the record is discarded.
func (p *DashboardPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec := <-p.queue:
			if _, err := p.client.Post(ctx, rec); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				p.log.Warn("dashboard: %v", errors.Wrapf(err, "post cycle %d", rec.Cycle))
				continue
			}
			p.posted.Add(1)
		}
	}
}

// Stats returns how many records were posted and how many were dropped
// because the queue was full.
func (p *DashboardPublisher) Stats() (posted, dropped uint64) {
	return p.posted.Load(), p.dropped.Load()
}
