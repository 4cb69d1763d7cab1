// Package tcpingest accepts msgpack-encoded dislocation frames from a host
// process over TCP and forwards them to the classification pipeline.
package tcpingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/tsandell/dislotrace/internal/framesource"
	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/internal/types"
)

// Source listens on a TCP address for host connections. Each connection
// carries a stream of msgpack-encoded Frame values.
type Source struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	listenAddr string
	frames     chan<- *types.Frame
	listener   net.Listener
	logger     *zap.SugaredLogger
}

// NewSource creates a TCP ingest source delivering frames to the given channel
func NewSource(ctx context.Context, wg *sync.WaitGroup, listenAddr string, frames chan<- *types.Frame, logger *zap.SugaredLogger) framesource.FrameSource {
	return &Source{
		ctx:        ctx,
		wg:         wg,
		listenAddr: listenAddr,
		frames:     frames,
		logger:     logger,
	}
}

// SourceName returns a human-readable name for this source
func (s *Source) SourceName() string {
	return "tcp-ingest"
}

// StartFrameSource begins listening for host connections
func (s *Source) StartFrameSource() error {
	var err error
	s.listener, err = net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.listenAddr, err)
	}
	log.Infof("frame ingest listening on %s", s.listenAddr)

	// Close the listener on shutdown to unblock Accept
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		<-s.ctx.Done()
		s.listener.Close()
	}()

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Source) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
			default:
				s.logger.Errorf("frame ingest accept error: %v", err)
			}
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Source) handleConn(conn net.Conn) {
	defer conn.Close()
	s.logger.Infof("host connected from %s", conn.RemoteAddr())

	dec := msgpack.NewDecoder(conn)
	for {
		var frame types.Frame
		if err := dec.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Infof("host %s disconnected", conn.RemoteAddr())
			} else {
				s.logger.Errorf("error decoding frame from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		select {
		case s.frames <- &frame:
		case <-s.ctx.Done():
			return
		}
	}
}
