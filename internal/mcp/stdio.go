package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
)

// ReadMessage reads one Content-Length framed JSON-RPC message: header
// lines up to a blank line, then exactly Content-Length body bytes. A
// missing or zero length, or end of stream before the headers complete,
// signals a clean end of session via io.EOF.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	headers := make(map[string]string)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
	}

	length, _ := strconv.Atoi(headers["content-length"])
	if length <= 0 {
		return nil, io.EOF
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// WriteMessage frames a response with a Content-Length header and writes
// header block plus body as a single write, so concurrent writers cannot
// interleave partial frames.
func WriteMessage(w io.Writer, resp protocol.Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Content-Length: %d\r\n\r\n", len(body))
	buf.Write(body)
	_, err = w.Write(buf.Bytes())
	return err
}

// RunStdio serves framed JSON-RPC over a byte pipe until the input stream
// ends. Messages are handled strictly in order: each response is written
// before the next request is read.
func RunStdio(ctx context.Context, server *Server, in io.Reader, out io.Writer, log *logrus.Entry) error {
	reader := bufio.NewReader(in)
	for {
		body, err := ReadMessage(reader)
		if err == io.EOF {
			log.Info("input stream closed, stdio session over")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading framed message: %w", err)
		}

		var req protocol.Request
		if err := json.Unmarshal(body, &req); err != nil {
			parseErr := protocol.Response{
				JSONRPC: "2.0",
				Error:   &protocol.ResponseError{Code: -32700, Message: "parse error"},
			}
			if werr := WriteMessage(out, parseErr); werr != nil {
				return werr
			}
			continue
		}

		if err := WriteMessage(out, server.Handle(ctx, req)); err != nil {
			return err
		}
	}
}
