package dialer

import (
	"bufio"
	"net"
)

// tunnelConn is an established CONNECT tunnel. The reader that parsed the
// proxy reply may already hold the first tunnelled bytes; reads drain it
// before touching the socket again.
type tunnelConn struct {
	net.Conn
	early *bufio.Reader
}

func (c *tunnelConn) Read(p []byte) (int, error) {
	if c.early != nil {
		if c.early.Buffered() > 0 {
			return c.early.Read(p)
		}
		c.early = nil
	}
	return c.Conn.Read(p)
}
