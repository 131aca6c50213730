/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// terminalCredential asks for the elevation password with a masked prompt,
// or reads it line by line when stdin is not a terminal.
type terminalCredential struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	lines       *bufio.Reader
}

func newTerminalCredential(a *application) *terminalCredential {
	return &terminalCredential{
		in:          a.stdin,
		out:         a.stderr,
		interactive: a.interactive(),
	}
}

func (c *terminalCredential) Credential(ctx context.Context, prompt string) (string, error) {
	if !c.interactive {
		return c.readLine(prompt)
	}

	input := components.NewPasswordInput(prompt)
	p := tea.NewProgram(input,
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return "", boardfinder.ErrCredentialCancelled
		}
		return "", fmt.Errorf("password prompt: %w", err)
	}
	if !input.Submitted() {
		return "", boardfinder.ErrCredentialCancelled
	}
	return input.Value(), nil
}

func (c *terminalCredential) readLine(prompt string) (string, error) {
	if c.lines == nil {
		c.lines = bufio.NewReader(c.in)
	}
	fmt.Fprint(c.out, prompt)
	line, err := c.lines.ReadString('\n')
	fmt.Fprintln(c.out)
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("%w: %w", boardfinder.ErrCredentialCancelled, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
