package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestPrompterText_RepromptsOnEmpty(t *testing.T) {
	p, out := newTestPrompter("\n   \nCoffee\n")

	got := p.Text("Name: ")
	assert.Equal(t, "Coffee", got)
	assert.Contains(t, out.String(), "must not be empty")
}

func TestPrompterInt_RepromptsOnGarbage(t *testing.T) {
	p, out := newTestPrompter("five\n5\n")

	assert.Equal(t, 5, p.Int("Stock: "))
	assert.Contains(t, out.String(), "whole number")
}

func TestPrompterDecimal_RejectsComma(t *testing.T) {
	p, out := newTestPrompter("1,5\n1.5\n")

	got := p.Decimal("Price: ")
	assert.Equal(t, "1.5", got.String())
	assert.Contains(t, out.String(), "dot (.)")
}

func TestPrompterDate_RepromptsOnBadFormat(t *testing.T) {
	p, out := newTestPrompter("30/10/2026\n2026-10-30\n")

	got := p.Date("Expiry date")
	assert.Equal(t, time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC), got)
	assert.Contains(t, out.String(), "Invalid date")
}

func TestPrompterYesNo(t *testing.T) {
	p, _ := newTestPrompter("y\nn\ns\nwhatever\n")

	assert.True(t, p.YesNo("Continue?"))
	assert.False(t, p.YesNo("Continue?"))
	assert.True(t, p.YesNo("Continue?")) // legacy Spanish affirmative
	assert.False(t, p.YesNo("Continue?"))
}

func TestPrompterEOF_StopsAsking(t *testing.T) {
	p, _ := newTestPrompter("")

	got := p.Int("Stock: ")
	require.True(t, p.EOF())
	assert.Equal(t, 0, got)
}
