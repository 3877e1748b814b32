package view

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Form — построчный ввод полей инлайн-формы. Пустой ввод оставляет
// текущее значение (редактирование), для создания текущее значение
// пустое.
type Form struct {
	out io.Writer
	in  *bufio.Reader
}

func NewForm(out io.Writer, in io.Reader) *Form {
	return &Form{
		out: out,
		in:  bufio.NewReader(in),
	}
}

// Prompt спрашивает значение поля; Enter без ввода возвращает current.
func (f *Form) Prompt(label, current string) string {
	if current != "" {
		fmt.Fprintf(f.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(f.out, "%s: ", label)
	}
	line, err := f.in.ReadString('\n')
	if err != nil {
		return current
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return current
	}
	return value
}

// PromptSecret — то же, что Prompt, но без значения по умолчанию в
// подсказке (пароли).
func (f *Form) PromptSecret(label string) string {
	fmt.Fprintf(f.out, "%s: ", label)
	line, err := f.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// PromptList принимает значения через запятую.
func (f *Form) PromptList(label, current string) []string {
	raw := f.Prompt(label, current)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// RenderFieldErrors печатает ошибки валидации под формой, по полям,
// в устойчивом порядке.
func RenderFieldErrors(w io.Writer, fields map[string][]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, msg := range fields[name] {
			fmt.Fprintln(w, color.RedString("  %s: %s", name, msg))
		}
	}
}
