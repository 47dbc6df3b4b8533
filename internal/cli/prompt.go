package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Prompter reads already-validated values from an interactive stream,
// re-prompting until the input parses. On EOF it stops asking and
// returns zero values; callers check EOF to end the session cleanly.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

func (p *Prompter) EOF() bool {
	return p.eof
}

// Line prints the prompt and returns one raw trimmed line, possibly empty.
func (p *Prompter) Line(msg string) string {
	fmt.Fprint(p.out, msg)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// Text loops until a non-empty line is entered.
func (p *Prompter) Text(msg string) string {
	for !p.eof {
		if s := p.Line(msg); s != "" {
			return s
		}
		if !p.eof {
			fmt.Fprintln(p.out, red+"Input must not be empty."+reset)
		}
	}
	return ""
}

// Int loops until a valid integer is entered.
func (p *Prompter) Int(msg string) int {
	for !p.eof {
		s := p.Line(msg)
		if p.eof {
			break
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(p.out, red+"Enter a whole number, e.g. 5."+reset)
			continue
		}
		return n
	}
	return 0
}

// Decimal loops until a valid decimal number is entered. A comma
// separator is rejected with a hint rather than misparsed.
func (p *Prompter) Decimal(msg string) decimal.Decimal {
	for !p.eof {
		s := p.Line(msg)
		if p.eof {
			break
		}
		if strings.Contains(s, ",") {
			fmt.Fprintln(p.out, red+"Use a dot (.) as the decimal separator."+reset)
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			fmt.Fprintln(p.out, red+"Enter a decimal number, e.g. 1.5."+reset)
			continue
		}
		return d
	}
	return decimal.Zero
}

// Float loops until a valid floating point number is entered.
func (p *Prompter) Float(msg string) float64 {
	for !p.eof {
		s := p.Line(msg)
		if p.eof {
			break
		}
		if strings.Contains(s, ",") {
			fmt.Fprintln(p.out, red+"Use a dot (.) as the decimal separator."+reset)
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Fprintln(p.out, red+"Enter a number, e.g. 1.5."+reset)
			continue
		}
		return f
	}
	return 0
}

// Date loops until a valid YYYY-MM-DD date is entered.
func (p *Prompter) Date(msg string) time.Time {
	for !p.eof {
		s := p.Line(msg + " (format: " + dateLayout + "): ")
		if p.eof {
			break
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			fmt.Fprintln(p.out, red+"Invalid date, e.g. 2025-10-30."+reset)
			continue
		}
		return t
	}
	return time.Time{}
}

// YesNo returns true when the answer starts with y (or s, accepted for
// data files shared with the historical application's users).
func (p *Prompter) YesNo(msg string) bool {
	s := strings.ToLower(p.Line(msg + " (y/n): "))
	return s == "y" || s == "yes" || s == "s"
}

// decimalFromInput parses a one-shot decimal answer, rejecting a comma
// separator the same way the interactive loop does.
func decimalFromInput(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") {
		return decimal.Decimal{}, fmt.Errorf("comma decimal separator in %q", s)
	}
	return decimal.NewFromString(s)
}
