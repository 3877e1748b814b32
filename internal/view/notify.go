package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ConsoleNotifier печатает уведомления в консоль и задает вопросы
// перед разрушительными операциями.
type ConsoleNotifier struct {
	out io.Writer
	in  *bufio.Reader
}

func NewNotifier(out io.Writer, in io.Reader) *ConsoleNotifier {
	return &ConsoleNotifier{
		out: out,
		in:  bufio.NewReader(in),
	}
}

func (n *ConsoleNotifier) Success(message string) {
	fmt.Fprintln(n.out, color.GreenString("✔ %s", message))
}

func (n *ConsoleNotifier) Error(message string) {
	fmt.Fprintln(n.out, color.RedString("✘ %s", message))
}

// Confirm спрашивает подтверждение. Все, кроме явного "y"/"yes" — отказ.
func (n *ConsoleNotifier) Confirm(message string) bool {
	fmt.Fprintf(n.out, "%s %s ", color.YellowString(message), "[y/N]:")
	line, err := n.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
