package cli

import (
	"context"

	"github.com/mcoot/ponto/internal/session"
)

// terminalNavigator turns navigation into hints about the next command
type terminalNavigator struct {
	out *Output
}

func (n *terminalNavigator) Replace(_ context.Context, route string) {
	switch route {
	case session.RouteLogin:
		n.out.Hint("Run `ponto login` to sign in.")
	case session.RoutePunch:
		n.out.Hint("Run `ponto punch` to record a punch.")
	case session.RouteEmployees:
		n.out.Hint("Run `ponto employees list` to see all employees.")
	}
}

// terminalNotifier prints notices to stderr
type terminalNotifier struct {
	out *Output
}

func (n *terminalNotifier) Notify(_ context.Context, notice session.Notice) {
	n.out.Notice(notice.Title, notice.Message)
}
