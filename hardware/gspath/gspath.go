// This file is part of GopherPS2.
//
// GopherPS2 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherPS2 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherPS2.  If not, see <https://www.gnu.org/licenses/>.

package gspath

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/logger"
)

// The three GS paths. Path 1 is the VU1 XGKICK path, path 2 is VIF1 DIRECT
// and path 3 is the GIF DMA channel.
const (
	Path1 = 1
	Path2 = 2
	Path3 = 3

	NumPaths = 3
)

// Error patterns.
const (
	Closed        = "gspath: closed"
	TransferError = "gspath: path %d: %v"
)

type path struct {
	id    int
	slot  *semaphore.Weighted
	queue chan []byte

	inflight atomic.Bool
	packets  atomic.Uint64
	bytes    atomic.Uint64
}

// GSPath is the set of GS paths and their workers.
type GSPath struct {
	backend Backend
	paths   [NumPaths]*path

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	closed atomic.Bool
}

// NewGSPath is the preferred method of initialisation for the GSPath type.
// The workers are started immediately.
func NewGSPath(backend Backend) *GSPath {
	if backend == nil {
		panic("gspath: nil backend")
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	g := &GSPath{
		backend: backend,
		ctx:     ctx,
		cancel:  cancel,
		group:   group,
	}

	for i := range g.paths {
		p := &path{
			id:    i + 1,
			slot:  semaphore.NewWeighted(1),
			queue: make(chan []byte, 1),
		}
		g.paths[i] = p
		group.Go(func() error {
			return g.worker(p)
		})
	}

	return g
}

func (g *GSPath) String() string {
	s := ""
	for _, p := range g.paths {
		s = fmt.Sprintf("%spath%d: %d packets %d bytes ", s, p.id, p.packets.Load(), p.bytes.Load())
	}
	return s[:len(s)-1]
}

func (g *GSPath) get(id int) *path {
	if id < Path1 || id > Path3 {
		panic(fmt.Sprintf("gspath: no path %d", id))
	}
	return g.paths[id-1]
}

func (g *GSPath) worker(p *path) error {
	for {
		select {
		case <-g.ctx.Done():
			return nil
		case data, ok := <-p.queue:
			if !ok {
				return nil
			}
			err := g.backend.Transfer(p.id, data)
			p.packets.Add(1)
			p.bytes.Add(uint64(len(data)))
			p.inflight.Store(false)
			p.slot.Release(1)
			if err != nil {
				err = curated.Errorf(TransferError, p.id, err)
				logger.Log(logger.Allow, "gspath", err)
				return err
			}
		}
	}
}

// queue a copy of the data. the slot must have been acquired.
func (p *path) push(data []byte) {
	d := make([]byte, len(data))
	copy(d, data)
	p.inflight.Store(true)
	p.queue <- d
}

// Send data over the path. Blocks until the path can accept the data. The
// data is copied.
func (g *GSPath) Send(path int, data []byte) error {
	p := g.get(path)
	if g.closed.Load() {
		return curated.Errorf(Closed)
	}
	if err := p.slot.Acquire(g.ctx, 1); err != nil {
		return curated.Errorf(Closed)
	}
	p.push(data)
	return nil
}

// TrySend implements the vif.GSPath interface. Returns false without waiting
// if the path has a packet in flight.
func (g *GSPath) TrySend(path int, data []byte) bool {
	p := g.get(path)
	if g.closed.Load() || g.ctx.Err() != nil {
		return false
	}
	if !p.slot.TryAcquire(1) {
		return false
	}
	p.push(data)
	return true
}

// Busy implements the vif.GSPath interface.
func (g *GSPath) Busy(path int) bool {
	return g.get(path).inflight.Load()
}

// Flush waits until no path has a packet in flight.
func (g *GSPath) Flush(ctx context.Context) error {
	for _, p := range g.paths {
		if err := p.slot.Acquire(ctx, 1); err != nil {
			return err
		}
		p.slot.Release(1)
	}
	return nil
}

// Close stops the workers once every queued packet has been transferred.
// Returns the first transfer error. Close can be called more than once.
func (g *GSPath) Close() error {
	if g.closed.CompareAndSwap(false, true) {
		for _, p := range g.paths {
			close(p.queue)
		}
	}
	err := g.group.Wait()
	g.cancel()
	return err
}

