package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pixil98/go-adventure/internal/listener"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "telnet":
		*lt = ListenerTypeTelnet
	case "ssh":
		*lt = ListenerTypeSSH
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

// String names the protocol the way it is written in config.
func (lt ListenerType) String() string {
	switch lt {
	case ListenerTypeTelnet:
		return "telnet"
	case ListenerTypeSSH:
		return "ssh"
	default:
		return fmt.Sprintf("ListenerType(%d)", int(lt))
	}
}

// ListenerConfig describes one text console players can connect to.
// Host is optional; an empty host listens on every interface.
type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Host        string       `json:"host,omitempty"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if strings.ContainsAny(cl.Host, ":/ ") && net.ParseIP(cl.Host) == nil {
		el.Add(fmt.Errorf("host %q must be a bare hostname or ip address", cl.Host))
	}
	if cl.Protocol != ListenerTypeSSH && cl.HostKeyPath != "" {
		el.Add(fmt.Errorf("host_key_path is only used by ssh listeners"))
	}

	return el.Err()
}

func (cl *ListenerConfig) addr() string {
	return net.JoinHostPort(cl.Host, strconv.Itoa(int(cl.Port)))
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.addr(), cm), nil
	case ListenerTypeSSH:
		hostKey, err := cl.hostKey()
		if err != nil {
			return nil, fmt.Errorf("ssh console on %s: %w", cl.addr(), err)
		}
		return listener.NewSshListener(cl.addr(), cm, hostKey), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

// hostKey loads the configured ssh host key. Without one, players see a
// fresh key every time the adventure restarts.
func (cl *ListenerConfig) hostKey() (ssh.Signer, error) {
	if cl.HostKeyPath != "" {
		return readHostKey(cl.HostKeyPath)
	}

	slog.Warn("ssh console has no host_key_path, players will see a new host key after every restart", "addr", cl.addr())
	return ephemeralHostKey()
}

func readHostKey(path string) (ssh.Signer, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", path, err)
	}
	signer, err := ssh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", path, err)
	}
	return signer, nil
}

func ephemeralHostKey() (ssh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ephemeral host key: %w", err)
	}
	return ssh.NewSignerFromKey(priv)
}
