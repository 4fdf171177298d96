package utils

import (
	"context"

	"github.com/pkg/errors"
	"go.einride.tech/can"
)

// FrameHandler receives decoded feedback frames.
type FrameHandler func(frameName string, values map[string]float64)

// Bus binds a motor map to a transport so callers work with frame and
// signal names instead of raw payloads.
type Bus struct {
	cmap   *CANMap
	writer CANWriter
	log    *Logger
	sent   uint64
	failed uint64
}

func NewBus(cmap *CANMap, writer CANWriter, log *Logger) *Bus {
	return &Bus{cmap: cmap, writer: writer, log: log}
}

func (b *Bus) Map() *CANMap { return b.cmap }

// Send encodes and transmits one frame.
func (b *Bus) Send(ctx context.Context, frameName string, values map[string]float64) error {
	frame, err := b.cmap.EncodeEinrideFrame(frameName, values)
	if err != nil {
		return errors.Wrapf(err, "encode %s", frameName)
	}
	if err := b.writer.WriteFrame(ctx, frame); err != nil {
		b.failed++
		return errors.Wrapf(err, "transmit %s", frameName)
	}
	b.sent++
	b.log.Trace("TX %s id=0x%X len=%d data=% X", frameName, frame.ID, frame.Length, frame.Data[:frame.Length])
	return nil
}

// Stats returns the number of frames sent and the number of failed writes.
func (b *Bus) Stats() (sent, failed uint64) { return b.sent, b.failed }

// Listen reads frames until ctx is done, decoding every frame the map
// knows and passing it to handle. Unknown ids are ignored.
func Listen(ctx context.Context, cmap *CANMap, reader CANReader, log *Logger, handle FrameHandler) error {
	log.Debug("RX loop started")
	defer log.Debug("RX loop stopped")

	for {
		frame, err := reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "receive")
		}
		dispatchFrame(cmap, frame, log, handle)
	}
}

func dispatchFrame(cmap *CANMap, frame can.Frame, log *Logger, handle FrameHandler) {
	fd, ok := cmap.ByID[frame.ID]
	if !ok || fd.Direction != DirectionRX {
		return
	}
	name, values, err := cmap.DecodeEinrideFrame(frame)
	if err != nil {
		log.Error("RX decode 0x%X: %v", frame.ID, err)
		return
	}
	log.Trace("RX %s id=0x%X len=%d data=% X", name, frame.ID, frame.Length, frame.Data[:frame.Length])
	handle(name, values)
}
