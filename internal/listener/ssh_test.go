package listener

import (
	"bufio"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"net"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/ssh"
)

type echoRunner struct{}

func (echoRunner) RunSession(ctx context.Context, conn io.ReadWriter) error {
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return err
	}
	_, err = io.WriteString(conn, "you said: "+line)
	return err
}

func TestSshListener_Serve(t *testing.T) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		t.Fatalf("creating signer: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := NewSshListener(ln.Addr().String(), NewConnectionManager(echoRunner{}), signer)

	done := make(chan error, 1)
	go func() { done <- l.serve(ctx, ln) }()

	client, err := ssh.Dial("tcp", ln.Addr().String(), &ssh.ClientConfig{
		User:            "ada",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	defer sess.Close()

	stdin, err := sess.StdinPipe()
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if err := sess.Shell(); err != nil {
		t.Fatalf("requesting shell: %v", err)
	}

	_, err = io.WriteString(stdin, "look\r")
	if err != nil {
		t.Fatalf("writing: %v", err)
	}

	got, err := bufio.NewReader(stdout).ReadString('\n')
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	testutil.AssertEqual(t, "reply", got, "you said: look\r\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected serve error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
}
