// Package notify delivers failure reports to webhooks and email
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"
)

// Failure describes a failed job to report
type Failure struct {
	Kind    string // pdf or latex
	JobID   string
	Message string
	Details string
}

// Params configures Notifier
type Params struct {
	Destinations []string      // webhook URLs or mailto: addresses
	Timeout      time.Duration // per-send timeout, defaults to 10s
	Host         string        // reported host name
	MaxLines     int           // details lines included, defaults to 20
	SMTP         *SMTPParams   // required for mailto: destinations only
}

// SMTPParams defines connection to the mail server
type SMTPParams struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
}

// Notifier posts failure reports to all destinations. Zero destinations disables it.
type Notifier struct {
	Params
	notifiers []notify.Notifier
}

// New makes Notifier with go-pkgz/notify webhook sender, plus email sender if SMTP is set
func New(p Params) *Notifier {
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	if p.MaxLines <= 0 {
		p.MaxLines = 20
	}
	res := &Notifier{
		Params:    p,
		notifiers: []notify.Notifier{notify.NewWebhook(notify.WebhookParams{Timeout: p.Timeout})},
	}
	if p.SMTP != nil && p.SMTP.Host != "" {
		res.notifiers = append(res.notifiers, notify.NewEmail(notify.SMTPParams{
			Host:        p.SMTP.Host,
			Port:        p.SMTP.Port,
			TLS:         p.SMTP.TLS,
			Username:    p.SMTP.Username,
			Password:    p.SMTP.Password,
			TimeOut:     p.Timeout,
			ContentType: "text/plain",
		}))
	}
	return res
}

// Enabled returns true if there is anything to send to
func (n *Notifier) Enabled() bool {
	return n != nil && len(n.Destinations) > 0
}

// Send delivers report to every destination, all failures are returned together
func (n *Notifier) Send(ctx context.Context, f Failure) error {
	if !n.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	text := n.MakeText(f)
	var errs []string
	for _, dest := range n.Destinations {
		if err := notify.Send(ctx, n.notifiers, dest, text); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", dest, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to send %d of %d notifications: %s", len(errs), len(n.Destinations), strings.Join(errs, "; "))
	}
	log.Printf("[DEBUG] failure of %s job %s reported to %d destination(s)", f.Kind, f.JobID, len(n.Destinations))
	return nil
}

// MakeText formats report as plain text, details cut to MaxLines lines
func (n *Notifier) MakeText(f Failure) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "texpress %s job %s failed", f.Kind, f.JobID)
	if n.Host != "" {
		fmt.Fprintf(&sb, " on %s", n.Host)
	}
	fmt.Fprintf(&sb, ": %s", f.Message)
	if f.Details == "" {
		return sb.String()
	}

	lines := strings.Split(strings.TrimSpace(f.Details), "\n")
	if len(lines) > n.MaxLines {
		lines = append(lines[:n.MaxLines], fmt.Sprintf("... %d more lines", len(lines)-n.MaxLines))
	}
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}
