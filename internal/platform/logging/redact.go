package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// Connection URLs with a password, e.g. redis://:pw@host or
	// postgres://user:pw@host/db.
	credentialURLPattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://[^/@\s]*:[^/@\s]*@`)

	// go-sql-driver DSNs, e.g. user:pw@tcp(host:3306)/db.
	mysqlDSNPattern = regexp.MustCompile(`^[^:/@\s]+:[^@\s]*@(tcp|unix)\(`)
)

// redactOptions lists what never reaches a log line: board users' email
// addresses and storage credentials.
func redactOptions() []masq.Option {
	return []masq.Option{
		// domain.User and the session requests
		masq.WithFieldName("Email"),
		masq.WithFieldName("email"),

		// storage configuration
		masq.WithFieldName("password"),
		masq.WithFieldName("dsn"),
		masq.WithFieldName("DSN"),
		masq.WithFieldName("URL"),
		masq.WithFieldPrefix("secret"),

		masq.WithRegex(credentialURLPattern),
		masq.WithRegex(mysqlDSNPattern),
	}
}

// NewReplaceAttr returns a slog ReplaceAttr function that redacts the
// fields and values listed in redactOptions, plus any extra opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(redactOptions(), opts...)...)
}

// redactHandler applies a ReplaceAttr function in front of handlers that do
// not accept slog.HandlerOptions, such as the charm pretty printer.
type redactHandler struct {
	next    slog.Handler
	replace func(groups []string, a slog.Attr) slog.Attr
	groups  []string
}

func newRedactHandler(next slog.Handler, replace func([]string, slog.Attr) slog.Attr) slog.Handler {
	return &redactHandler{next: next, replace: replace}
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.replace(h.groups, a)
	}

	return &redactHandler{next: h.next.WithAttrs(redacted), replace: h.replace, groups: h.groups}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)

	return &redactHandler{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
