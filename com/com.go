package com

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	readBufferSize        = 1024
	atSendingQueueTimeout = 500 * time.Millisecond

	ctrlZ  = 0x1a
	escape = 0x1b
)

// ErrCommandFailed indicates a final result code that reports an error: ERROR, +CME ERROR, or +CMS ERROR.
var ErrCommandFailed = errors.New("command failed")

// NewWithTrace creates a new COM instance that traces all communications to a second writer.
func NewWithTrace(device io.ReadWriter, tracer io.Writer) *COM {
	result := New(device)
	result.tracer = tracer
	return result
}

// New creates a new COM instance using the given io.ReadWriter to communicate with the modem's AT interface.
func New(device io.ReadWriter) *COM {
	lines := readLoop(device)
	commands := make(chan command)
	result := &COM{
		commands: commands,
		closed:   make(chan struct{}),
	}

	go func() {
		result.trace("****\n* SESSION START\n****\n")
		defer result.trace("****\n* SESSION END\n****\n")
		defer close(result.closed)

		var commandCancelled <-chan struct{}
		var activeCommand *command
		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()

		for {
			select {
			case line, valid := <-lines:
				if !valid {
					return
				}
				result.tracef("rx:  %s\nhex: %X\n--\n", line, line)

				if activeCommand == nil {
					// unsolicited result codes are not handled
					break
				}
				activeCommand.AddLine(line)
				if activeCommand.Complete() {
					commandCancelled = nil
					activeCommand = nil
				}
			case <-commandCancelled:
				commandCancelled = nil
				activeCommand = nil
			case <-tick.C:
			}
			if activeCommand == nil {
				select {
				case cmd := <-commands:
					if len(cmd.request) == 0 {
						break
					}

					txbytes := make([]byte, 0, len(cmd.request)+2)
					txbytes = append(txbytes, []byte(cmd.request)...)
					lastbyte := txbytes[len(txbytes)-1]
					if (lastbyte != ctrlZ) && (lastbyte != escape) {
						txbytes = append(txbytes, 0x0d, 0x0a)
					}
					result.tracef("tx:  %s\nhex: %X\n--\n", txbytes, txbytes)
					_, err := device.Write(txbytes)
					if err != nil {
						cmd.Fail(err)
						break
					}
					commandCancelled = cmd.cancelled
					activeCommand = &cmd
				default:
				}
			}
		}
	}()

	return result
}

// COM allows to communicate with a modem using AT commands.
type COM struct {
	commands chan<- command
	closed   chan struct{}
	tracer   io.Writer
}

func readLoop(r io.Reader) <-chan string {
	lines := make(chan string, 1)
	go func() {
		buf := make([]byte, readBufferSize)
		currentLine := make([]byte, 0, readBufferSize)
		for {
			n, err := r.Read(buf)
			if err != nil {
				if len(currentLine) > 0 {
					lines <- string(currentLine)
				}
				close(lines)
				return
			}

			for _, b := range buf[0:n] {
				switch {
				case b == '\n':
					if len(currentLine) == 0 {
						continue
					}
					lines <- string(currentLine)
					currentLine = currentLine[:0]
				case b < ' ':
					continue
				default:
					currentLine = append(currentLine, b)
				}
			}
		}
	}()
	return lines
}

func (c *COM) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// WaitUntilReady sends "AT" until the modem answers with OK. A modem that is still busy with its
// SIM card is asked again after the given interval.
func (c *COM) WaitUntilReady(ctx context.Context, interval time.Duration) error {
	for {
		_, err := c.AT(ctx, "AT")
		if err == nil {
			return nil
		}
		if !strings.HasSuffix(err.Error(), "+CME ERROR: 14") {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// AT sends the given request and returns the information lines of the response.
func (c *COM) AT(ctx context.Context, request string) ([]string, error) {
	cmd := command{
		request:   request,
		response:  make(chan []string, 1),
		err:       make(chan error, 1),
		cancelled: ctx.Done(),
		completed: make(chan struct{}),
	}

	select {
	case c.commands <- cmd:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, io.ErrClosedPipe
	case <-time.After(atSendingQueueTimeout):
		return nil, fmt.Errorf("AT sending queue timeout")
	}

	select {
	case response := <-cmd.response:
		return response, nil
	case err := <-cmd.err:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Request is the same as AT, it allows to use COM wherever a requester is needed.
func (c *COM) Request(ctx context.Context, request string) ([]string, error) {
	return c.AT(ctx, request)
}

// ATs sends all given requests in order and stops at the first failure.
func (c *COM) ATs(ctx context.Context, requests ...string) error {
	for _, request := range requests {
		_, err := c.AT(ctx, request)
		if err != nil {
			return fmt.Errorf("%s failed: %w", request, err)
		}
	}
	return nil
}

func (c *COM) trace(args ...interface{}) {
	if c.tracer == nil {
		return
	}
	fmt.Fprint(c.tracer, args...)
}

func (c *COM) tracef(format string, args ...interface{}) {
	if c.tracer == nil {
		return
	}
	fmt.Fprintf(c.tracer, format, args...)
}

type command struct {
	lines     []string
	request   string
	response  chan []string
	err       chan error
	cancelled <-chan struct{}
	completed chan struct{}
}

func (c *command) AddLine(line string) {
	select {
	case <-c.cancelled:
		return
	case <-c.completed:
		return
	default:
	}

	saniLine := strings.TrimSpace(strings.ToUpper(line))
	switch {
	case saniLine == "OK":
		c.response <- c.lines
		close(c.completed)
	case strings.HasPrefix(saniLine, "ERROR"),
		strings.HasPrefix(saniLine, "+CME ERROR"),
		strings.HasPrefix(saniLine, "+CMS ERROR"):
		c.Fail(fmt.Errorf("%w: %s", ErrCommandFailed, saniLine))
	default:
		c.lines = append(c.lines, line)
	}
}

func (c *command) Fail(err error) {
	c.err <- err
	close(c.completed)
}

func (c *command) Complete() bool {
	select {
	case <-c.cancelled:
		return true
	case <-c.completed:
		return true
	default:
		return false
	}
}
