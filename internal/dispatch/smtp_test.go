package dispatch

import (
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smtpScript fixes the replies a scripted server gives to the commands
// whose outcome a test wants to control.
type smtpScript struct {
	authReply string
	rcptReply string
	quitReply string
}

// startScriptedServer runs a one-connection SMTP server on a loopback
// port. It speaks just enough of the protocol for a PLAIN-auth
// submission; TLS is left to the dialing side of Send, which is not
// under test here.
func startScriptedServer(t *testing.T, script smtpScript) string {
	t.Helper()

	if script.authReply == "" {
		script.authReply = "235 2.7.0 accepted"
	}
	if script.rcptReply == "" {
		script.rcptReply = "250 2.1.5 ok"
	}
	if script.quitReply == "" {
		script.quitReply = "221 2.0.0 bye"
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tc := textproto.NewConn(conn)
		_ = tc.PrintfLine("220 scripted ready")
		for {
			line, err := tc.ReadLine()
			if err != nil {
				return
			}
			verb, _, _ := strings.Cut(line, " ")
			switch strings.ToUpper(verb) {
			case "EHLO":
				_ = tc.PrintfLine("250-scripted")
				_ = tc.PrintfLine("250 AUTH PLAIN")
			case "HELO":
				_ = tc.PrintfLine("250 scripted")
			case "AUTH":
				_ = tc.PrintfLine("%s", script.authReply)
			case "MAIL":
				_ = tc.PrintfLine("250 2.1.0 ok")
			case "RCPT":
				_ = tc.PrintfLine("%s", script.rcptReply)
			case "DATA":
				_ = tc.PrintfLine("354 go ahead")
				for {
					l, err := tc.ReadLine()
					if err != nil {
						return
					}
					if l == "." {
						break
					}
				}
				_ = tc.PrintfLine("250 2.0.0 queued")
			case "QUIT":
				_ = tc.PrintfLine("%s", script.quitReply)
				return
			default:
				_ = tc.PrintfLine("250 ok")
			}
		}
	}()

	return ln.Addr().String()
}

// dialScripted connects an smtp.Client to the scripted server. The
// hello name is localhost so PLAIN auth is legal without TLS.
func dialScripted(t *testing.T, addr string) *smtp.Client {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	client, err := smtp.NewClient(conn, "localhost")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

var converseAccount = Account{Address: "user@gmail.com", AppPassword: "app-password"}

const converseMsg = "Subject: Hello\r\n\r\nBody\r\n"

func TestConverse_Delivers(t *testing.T) {
	addr := startScriptedServer(t, smtpScript{})
	client := dialScripted(t, addr)

	err := converse(client, "localhost", converseAccount, "hr@example.com", converseMsg)
	assert.NoError(t, err)
}

func TestConverse_AuthRejected(t *testing.T) {
	addr := startScriptedServer(t, smtpScript{authReply: "535 5.7.8 bad credentials"})
	client := dialScripted(t, addr)

	err := converse(client, "localhost", converseAccount, "hr@example.com", converseMsg)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestConverse_RecipientRejected(t *testing.T) {
	addr := startScriptedServer(t, smtpScript{rcptReply: "550 5.1.1 no such user"})
	client := dialScripted(t, addr)

	err := converse(client, "localhost", converseAccount, "nobody@example.com", converseMsg)

	var rcptErr *RecipientError
	require.ErrorAs(t, err, &rcptErr)
	assert.Equal(t, "nobody@example.com", rcptErr.Recipient)
}

func TestConverse_QuitFailureIsTransportError(t *testing.T) {
	addr := startScriptedServer(t, smtpScript{quitReply: "421 4.3.0 shutting down"})
	client := dialScripted(t, addr)

	err := converse(client, "localhost", converseAccount, "hr@example.com", converseMsg)

	// The message was accepted, but a failed close must still land in
	// the error taxonomy rather than escape untyped.
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "localhost", transportErr.Host)
}
