package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// 2^14 plaintext plus the expansion allowance for protected records.
const maxRecordLen = 1<<14 + 2048

// maxHandshakeLen bounds how much of a fragmented handshake message we buffer.
// Certificate chains are the only large messages we ever skip over.
const maxHandshakeLen = 1 << 18

// ErrMalformed marks server output that is not a TLS record stream we can
// follow.
var ErrMalformed = errors.New("malformed server response")

// AlertError is a fatal alert the server sent before choosing a suite, for
// descriptions that do not simply mean "no acceptable cipher".
type AlertError struct {
	Level       uint8
	Description uint8
}

func (e *AlertError) Error() string {
	return "remote alert: " + alertName(e.Description)
}

const (
	alertCloseNotify          uint8 = 0
	alertUnexpectedMessage    uint8 = 10
	alertHandshakeFailure     uint8 = 40
	alertIllegalParameter     uint8 = 47
	alertDecodeError          uint8 = 50
	alertProtocolVersion      uint8 = 70
	alertInsufficientSecurity uint8 = 71
	alertInternalError        uint8 = 80
	alertUnrecognizedName     uint8 = 112
)

var alertNames = map[uint8]string{
	alertCloseNotify:          "close_notify",
	alertUnexpectedMessage:    "unexpected_message",
	alertHandshakeFailure:     "handshake_failure",
	alertIllegalParameter:     "illegal_parameter",
	alertDecodeError:          "decode_error",
	alertProtocolVersion:      "protocol_version",
	alertInsufficientSecurity: "insufficient_security",
	alertInternalError:        "internal_error",
	alertUnrecognizedName:     "unrecognized_name",
}

func alertName(desc uint8) string {
	if n, ok := alertNames[desc]; ok {
		return n
	}
	return fmt.Sprintf("alert(%d)", desc)
}

// rejects reports whether an alert means the server would not pick any of the
// offered suites on this version.
func rejects(desc uint8) bool {
	switch desc {
	case alertHandshakeFailure, alertInsufficientSecurity, alertProtocolVersion, alertIllegalParameter:
		return true
	}
	return false
}

// message is one unit read off the connection: either an alert or a complete
// handshake message.
type message struct {
	alert *AlertError
	typ   uint8
	body  []byte
}

type recordReader struct {
	r       io.Reader
	hs      bytes.Buffer
	records int
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: r}
}

func (rr *recordReader) readRecord() (uint8, []byte, error) {
	hdr := make([]byte, 5)
	if _, err := io.ReadFull(rr.r, hdr); err != nil {
		if rr.records == 0 {
			return 0, nil, fmt.Errorf("read record header: connection closed before any record: %w", err)
		}
		return 0, nil, fmt.Errorf("read record header: %w", err)
	}
	typ := hdr[0]
	if typ < recordChangeCipherSpec || typ > recordApplicationData || hdr[1] != 3 {
		return 0, nil, fmt.Errorf("%w: not a TLS record (header % x)", ErrMalformed, hdr)
	}
	n := int(binary.BigEndian.Uint16(hdr[3:5]))
	if n == 0 || n > maxRecordLen {
		return 0, nil, fmt.Errorf("%w: record length %d", ErrMalformed, n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(rr.r, body); err != nil {
		return 0, nil, fmt.Errorf("read record body: %w", err)
	}
	rr.records++
	return typ, body, nil
}

func (rr *recordReader) buffered() (message, bool) {
	b := rr.hs.Bytes()
	if len(b) < 4 {
		return message{}, false
	}
	n := int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if len(b) < 4+n {
		return message{}, false
	}
	msg := message{typ: b[0], body: append([]byte(nil), b[4:4+n]...)}
	rr.hs.Next(4 + n)
	return msg, true
}

func (rr *recordReader) readMessage() (message, error) {
	for {
		if msg, ok := rr.buffered(); ok {
			return msg, nil
		}
		typ, body, err := rr.readRecord()
		if err != nil {
			return message{}, err
		}
		switch typ {
		case recordHandshake:
			if rr.hs.Len()+len(body) > maxHandshakeLen {
				return message{}, fmt.Errorf("%w: handshake message too large", ErrMalformed)
			}
			rr.hs.Write(body)
		case recordAlert:
			if len(body) < 2 {
				return message{}, fmt.Errorf("%w: short alert", ErrMalformed)
			}
			return message{alert: &AlertError{Level: body[0], Description: body[1]}}, nil
		case recordChangeCipherSpec:
			// TLS1.3 middlebox compatibility, nothing to learn from it.
		default:
			return message{}, fmt.Errorf("%w: unexpected content type %d before handshake completed", ErrMalformed, typ)
		}
	}
}
