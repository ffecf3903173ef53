// Package console runs the intake over a line-oriented terminal session.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"legal-intake-bot/internal/usecase/intake"
)

// chatID for the single local session.
const chatID int64 = 0

type Console struct {
	intake *intake.Service
	in     io.Reader
	out    io.Writer
}

func New(intakeSvc *intake.Service, in io.Reader, out io.Writer) *Console {
	return &Console{
		intake: intakeSvc,
		in:     in,
		out:    out,
	}
}

// Run asks every prompt, prints the consultation and returns. It returns
// io.ErrUnexpectedEOF if input ends before the intake is finished.
func (c *Console) Run(ctx context.Context) error {
	conv := c.intake.Start(ctx, chatID)
	prompt, _ := c.intake.CurrentPrompt(conv)
	if err := c.printf("%s\n> ", prompt); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		conv, accepted := c.intake.Handle(ctx, chatID, scanner.Text())
		if !accepted {
			if err := c.printf("> "); err != nil {
				return err
			}
			continue
		}

		if next, asking := c.intake.CurrentPrompt(conv); asking {
			if err := c.printf("%s\n> ", next); err != nil {
				return err
			}
			continue
		}

		if last, ok := conv.LastMessage(); ok {
			return c.printf("\n%s\n", last.Content)
		}
		return nil
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

func (c *Console) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(c.out, format, args...)
	return err
}
