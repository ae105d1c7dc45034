package email

import (
	"bytes"
	"context"
	"testing"

	"bizman/internal/platform/config"
)

func TestNewReturnsDisabledWithoutHost(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: true})
	if _, ok := mailer.(disabled); !ok {
		t.Fatalf("expected disabled mailer without SMTP host, got %T", mailer)
	}
	if err := mailer.Send(context.Background(), "a@x", "b@x", "s", "body"); err != nil {
		t.Fatalf("disabled mailer must not error: %v", err)
	}
}

func TestNewReturnsDisabledWhenOff(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "mail.local"})
	if _, ok := mailer.(disabled); !ok {
		t.Fatalf("expected disabled mailer when email is off, got %T", mailer)
	}
}

func TestComposeMessageHeaders(t *testing.T) {
	msg := composeMessage("hr@demo.local", "staff@demo.local", "Evaluation ready", "Your self stage is open.")
	for _, want := range []string{
		"From: hr@demo.local\r\n",
		"To: staff@demo.local\r\n",
		"Subject: Evaluation ready\r\n",
		"Content-Type: text/plain",
	} {
		if !bytes.Contains(msg, []byte(want)) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if !bytes.HasSuffix(msg, []byte("Your self stage is open.")) {
		t.Fatal("body must follow the blank header separator")
	}
}
