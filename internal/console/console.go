// Package console runs the interview over a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

type line struct {
	text string
	err  error
}

// Console reads one answer per line and prints prompts on their own line.
// Input is read by a single background goroutine so a blocked read never
// holds up cancellation.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan line
	once  sync.Once
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, lines: make(chan line)}
}

func (c *Console) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// Listen waits for the next full line or for ctx to be done. A final line
// without a trailing newline is returned before io.EOF.
func (c *Console) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.once.Do(func() { go c.readLines() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (c *Console) readLines() {
	defer close(c.lines)
	for {
		s, err := c.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && s != "" {
				c.lines <- line{text: strings.TrimRight(s, "\r\n")}
				c.lines <- line{err: io.EOF}
				return
			}
			c.lines <- line{err: err}
			return
		}
		c.lines <- line{text: strings.TrimRight(s, "\r\n")}
	}
}
