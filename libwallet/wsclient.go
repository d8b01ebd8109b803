package libwallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ltp456/uwallet/libwallet/utils"
)

const wsWriteTimeout = 10 * time.Second

// ErrConnectionClosed is returned for calls made on, or pending when, a
// closed websocket connection.
var ErrConnectionClosed = errors.New("rpc connection closed")

// wsCaller multiplexes requests over a single websocket connection. Responses
// are matched to requests by id; messages without a pending request, such as
// subscription notifications, are dropped.
type wsCaller struct {
	conn *websocket.Conn

	writeMtx sync.Mutex

	mtx     sync.Mutex
	pending map[uint64]chan *rpcResponse
	err     error

	done chan struct{}
}

func dialWS(ctx context.Context, endpoint string) (*wsCaller, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, utils.NewError(utils.ErrNotConnected, fmt.Errorf("dial %s: %w", endpoint, err))
	}

	c := &wsCaller{
		conn:    conn,
		pending: make(map[uint64]chan *rpcResponse),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *wsCaller) readLoop() {
	defer close(c.done)
	for {
		resp := new(rpcResponse)
		if err := c.conn.ReadJSON(resp); err != nil {
			c.fail(fmt.Errorf("%w: %v", ErrConnectionClosed, err))
			return
		}

		c.mtx.Lock()
		ch, ok := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.mtx.Unlock()
		if !ok {
			log.Tracef("dropping unsolicited websocket message id=%d", resp.ID)
			continue
		}
		ch <- resp
	}
}

// fail records err and releases every pending call.
func (c *wsCaller) fail(err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.err == nil {
		c.err = err
	}
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

func (c *wsCaller) call(ctx context.Context, req *rpcRequest) (*rpcResponse, error) {
	ch := make(chan *rpcResponse, 1)

	c.mtx.Lock()
	if c.err != nil {
		err := c.err
		c.mtx.Unlock()
		return nil, err
	}
	c.pending[req.ID] = ch
	c.mtx.Unlock()

	c.writeMtx.Lock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	err := c.conn.WriteJSON(req)
	c.writeMtx.Unlock()
	if err != nil {
		c.forget(req.ID)
		return nil, utils.NewError(utils.ErrNotConnected, err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			c.mtx.Lock()
			err := c.err
			c.mtx.Unlock()
			return nil, err
		}
		return resp, nil
	case <-ctx.Done():
		c.forget(req.ID)
		return nil, ctx.Err()
	}
}

func (c *wsCaller) forget(id uint64) {
	c.mtx.Lock()
	delete(c.pending, id)
	c.mtx.Unlock()
}

func (c *wsCaller) close() error {
	c.writeMtx.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMtx.Unlock()

	err := c.conn.Close()
	<-c.done
	return err
}
