package dialer

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	xproxy "golang.org/x/net/proxy"
)

// Dialer opens the TCP connection a toolchain runs its handshake over.
type Dialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

type dialerFunc func(ctx context.Context, network, addr string) (net.Conn, error)

func (d dialerFunc) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return d(ctx, network, addr)
}

// Direct connects without a proxy. timeout bounds the TCP connect only.
func Direct(timeout time.Duration) Dialer {
	return dialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		return (&net.Dialer{Timeout: timeout}).DialContext(ctx, network, addr)
	})
}

// SOCKS5 connects through a SOCKS5 proxy at socksAddr ("host:port", optionally
// "user:pass@host:port").
func SOCKS5(socksAddr string, timeout time.Duration) (Dialer, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	addr, auth, err := parseSOCKSAddr(socksAddr)
	if err != nil {
		return nil, err
	}

	forward := &net.Dialer{Timeout: timeout}
	d, err := xproxy.SOCKS5("tcp", addr, auth, forward)
	if err != nil {
		return nil, fmt.Errorf("socks5 dialer: %w", err)
	}
	cd, ok := d.(xproxy.ContextDialer)
	if !ok {
		return nil, errors.New("socks5 dialer does not support contexts")
	}
	return dialerFunc(cd.DialContext), nil
}

// HTTPConnect tunnels through an HTTP proxy with CONNECT. proxyURL is
// "http://[user:pass@]host:port".
func HTTPConnect(proxyURL string, timeout time.Duration) (Dialer, error) {
	u, err := url.Parse(strings.TrimSpace(proxyURL))
	if err != nil {
		return nil, fmt.Errorf("invalid http proxy %q: %w", proxyURL, err)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("invalid http proxy %q: scheme must be http", proxyURL)
	}
	if _, _, err := net.SplitHostPort(u.Host); err != nil {
		return nil, fmt.Errorf("invalid http proxy %q: %w", proxyURL, err)
	}

	var auth string
	if u.User != nil {
		pass, _ := u.User.Password()
		auth = "Basic " + base64.StdEncoding.EncodeToString([]byte(u.User.Username()+":"+pass))
	}
	direct := Direct(timeout)
	return dialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := direct.DialContext(ctx, network, u.Host)
		if err != nil {
			return nil, fmt.Errorf("dial http proxy: %w", err)
		}
		tunnel, err := connectTunnel(ctx, conn, addr, auth)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return tunnel, nil
	}), nil
}

func connectTunnel(ctx context.Context, conn net.Conn, addr, auth string) (net.Conn, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
		defer func() { _ = conn.SetDeadline(time.Time{}) }()
	}

	req := &http.Request{
		Method: http.MethodConnect,
		URL:    &url.URL{Opaque: addr},
		Host:   addr,
		Header: make(http.Header),
	}
	if auth != "" {
		req.Header.Set("Proxy-Authorization", auth)
	}
	if err := req.Write(conn); err != nil {
		return nil, fmt.Errorf("write CONNECT: %w", err)
	}

	br := bufio.NewReader(conn)
	resp, err := http.ReadResponse(br, req)
	if err != nil {
		return nil, fmt.Errorf("read CONNECT response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("proxy refused CONNECT %s: %s", addr, resp.Status)
	}
	if br.Buffered() > 0 {
		return &tunnelConn{Conn: conn, early: br}, nil
	}
	return conn, nil
}

// New picks the proxy kind from proxyAddr: empty means Direct, an http://
// URL means HTTP CONNECT, anything else SOCKS5.
func New(proxyAddr string, timeout time.Duration) (Dialer, error) {
	proxyAddr = strings.TrimSpace(proxyAddr)
	switch {
	case proxyAddr == "":
		return Direct(timeout), nil
	case strings.HasPrefix(strings.ToLower(proxyAddr), "http://"):
		return HTTPConnect(proxyAddr, timeout)
	default:
		return SOCKS5(proxyAddr, timeout)
	}
}

func parseSOCKSAddr(raw string) (string, *xproxy.Auth, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "socks5://")
	if raw == "" {
		return "", nil, errors.New("empty socks5 address")
	}

	var auth *xproxy.Auth
	if at := strings.LastIndex(raw, "@"); at >= 0 {
		user, pass, _ := strings.Cut(raw[:at], ":")
		auth = &xproxy.Auth{User: user, Password: pass}
		raw = raw[at+1:]
	}
	if _, _, err := net.SplitHostPort(raw); err != nil {
		return "", nil, fmt.Errorf("invalid socks5 address %q: %w", raw, err)
	}
	return raw, auth, nil
}
