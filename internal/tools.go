package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console reads lines from and writes text to a connection. All reads for a
// connection must go through the same Console so buffered input is not lost.
type Console struct {
	r *bufio.Reader
	w io.Writer
}

func NewConsole(rw io.ReadWriter) *Console {
	return &Console{r: bufio.NewReader(rw), w: rw}
}

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// ReadLine returns the next line without its line ending.
func (c *Console) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Write(s string) error {
	_, err := io.WriteString(c.w, s)
	return err
}

func (c *Console) Prompt(prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		err := c.Write(prompt)
		if err != nil {
			return "", err
		}

		input, err := c.ReadLine()
		if err != nil {
			return "", err
		}

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if err := c.Write(msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					_ = c.Write("too many tries\n")
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func (c *Console) PromptYN(prompt string) (bool, error) {
	str, err := c.Prompt(prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "y", "yes":
				return true, ""

			case "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
