package utils

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

type CANWriter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}

type CANReader interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

// SocketCANWriter transmits frames on a SocketCAN interface such as can0
// or vcan0.
type SocketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, errors.Wrapf(err, "socketcan dial %s", iface)
	}
	return &SocketCANWriter{
		conn: conn,
		tx:   socketcan.NewTransmitter(conn),
	}, nil
}

func (w *SocketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return w.tx.TransmitFrame(ctx, frame)
}

func (w *SocketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}

// SocketCANReader receives frames from a SocketCAN interface. Receive
// blocks, so a single pump goroutine feeds ReadFrame and cancellation is
// handled by closing the socket.
type SocketCANReader struct {
	conn   net.Conn
	recv   frameReceiver
	frames chan can.Frame
	errs   chan error
	done   chan struct{}
	once   sync.Once
	closed sync.Once
}

func NewSocketCANReader(ctx context.Context, iface string) (*SocketCANReader, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, errors.Wrapf(err, "socketcan dial %s", iface)
	}
	return newSocketCANReader(conn, socketcan.NewReceiver(conn)), nil
}

// frameReceiver is the part of socketcan.Receiver the pump uses.
type frameReceiver interface {
	Receive() bool
	Frame() can.Frame
	Err() error
}

func newSocketCANReader(conn net.Conn, recv frameReceiver) *SocketCANReader {
	return &SocketCANReader{
		conn:   conn,
		recv:   recv,
		frames: make(chan can.Frame, 64),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
}

// pump exits once Close is called, even with nobody reading.
func (r *SocketCANReader) pump() {
	for r.recv.Receive() {
		select {
		case r.frames <- r.recv.Frame():
		case <-r.done:
			return
		}
	}
	err := r.recv.Err()
	if err == nil {
		err = errors.New("socketcan receiver closed")
	}
	select {
	case r.errs <- err:
	case <-r.done:
	}
}

func (r *SocketCANReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	r.once.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case f := <-r.frames:
		return f, nil
	case err := <-r.errs:
		return can.Frame{}, err
	}
}

func (r *SocketCANReader) Close() error {
	r.closed.Do(func() { close(r.done) })
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
