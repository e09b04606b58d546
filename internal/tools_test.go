package internal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type fakeConn struct {
	io.Reader
	bytes.Buffer
}

func (c *fakeConn) Read(p []byte) (int, error) {
	return c.Reader.Read(p)
}

func newFakeConn(input string) *fakeConn {
	return &fakeConn{Reader: strings.NewReader(input)}
}

func TestConsole_Prompt(t *testing.T) {
	tests := map[string]struct {
		input     string
		opts      []promptOption
		exp       string
		expErr    string
		expOutput string
	}{
		"plain": {
			input:     "hello\n",
			exp:       "hello",
			expOutput: "? ",
		},
		"crlf": {
			input: "hello\r\n",
			exp:   "hello",
		},
		"no trailing newline": {
			input: "hello",
			exp:   "hello",
		},
		"retries until valid": {
			input: "bad\ngood\n",
			opts: []promptOption{WithValidator(func(s string) (bool, string) {
				return s == "good", "nope\n"
			})},
			exp:       "good",
			expOutput: "? nope\n? ",
		},
		"too many tries": {
			input: "bad\nbad\n",
			opts: []promptOption{
				WithValidator(func(s string) (bool, string) { return false, "nope\n" }),
				WithMaxTries(2),
			},
			expErr: "too many tries",
		},
		"eof": {
			input:  "",
			expErr: "EOF",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			conn := newFakeConn(tt.input)
			got, err := NewConsole(conn).Prompt("? ", tt.opts...)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "input", got, tt.exp)
			if tt.expOutput != "" {
				testutil.AssertEqual(t, "output", conn.String(), tt.expOutput)
			}
		})
	}
}

func TestConsole_PromptYN(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   bool
	}{
		"yes":        {input: "yes\n", exp: true},
		"y":          {input: "Y\n", exp: true},
		"no":         {input: "no\n", exp: false},
		"retry then": {input: "maybe\nn\n", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewConsole(newFakeConn(tt.input)).PromptYN("again? ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}

func TestConsole_ReadsShareBuffer(t *testing.T) {
	c := NewConsole(newFakeConn("first\nsecond\n"))

	a, err := c.Prompt("> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := c.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first", a, "first")
	testutil.AssertEqual(t, "second", b, "second")
}
