package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-adventure/internal/api"
	"github.com/pixil98/go-errors"
)

type HttpConfig struct {
	Addr            string `json:"addr"`
	ReadTimeout     string `json:"read_timeout"`
	WriteTimeout    string `json:"write_timeout"`
	EnableMCP       bool   `json:"enable_mcp"`
	EnableWebsocket bool   `json:"enable_websocket"`
}

func (c *HttpConfig) validate() error {
	el := errors.NewErrorList()

	for name, v := range map[string]string{"read_timeout": c.ReadTimeout, "write_timeout": c.WriteTimeout} {
		if v == "" {
			continue
		}
		_, err := time.ParseDuration(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing http %s: %w", name, err))
		}
	}

	return el.Err()
}

func (c *HttpConfig) enabled() bool {
	return c.Addr != ""
}

func (c *HttpConfig) serverOpts() []api.ServerOpt {
	read, _ := time.ParseDuration(c.ReadTimeout)
	write, _ := time.ParseDuration(c.WriteTimeout)

	return []api.ServerOpt{
		api.WithAddr(c.Addr),
		api.WithTimeouts(read, write),
		api.WithWebSocket(c.EnableWebsocket),
	}
}
