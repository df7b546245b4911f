package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/logger"
	"github.com/sirajbot/siraj/core/telegram/commands"
)

// Registry holds bot commands and callback namespace handlers.
//
// Callback handlers are keyed by token namespace: a handler registered
// under "warns_user" receives every callback whose data equals the
// namespace or starts with the namespace followed by the separator.
type Registry struct {
	commands         map[string]commands.Command
	callbacks        map[string]tele.HandlerFunc
	callbacksMu      sync.RWMutex
	callbackNotFound tele.HandlerFunc
}

// NewRegistry creates an empty Registry with a default unknown-callback fallback.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		callbacks: make(map[string]tele.HandlerFunc),
		callbackNotFound: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		},
	}
}

func warnWire(event string, attrs ...slog.Attr) {
	logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, event, attrs...)
}

// RegisterCommand adds a new command. Invalid registrations are logged
// and ignored so a bad module cannot take the whole bot down at start.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	switch {
	case r == nil || name == "" || cmd.Handler == nil || cmd.Description == "":
		warnWire("register.command.skip",
			slog.String("name", name),
			slog.String("reason", "invalid"),
		)
	case name[0] != '/':
		warnWire("register.command.skip",
			slog.String("name", name),
			slog.String("reason", "no_slash_prefix"),
		)
	default:
		if _, exists := r.commands[name]; exists {
			warnWire("register.command.duplicate", slog.String("name", name))
			return
		}
		r.commands[name] = cmd
	}
}

// ListCommands returns registered commands sorted by name, optionally
// filtering out hidden ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for name, meta := range r.commands {
		if visibleOnly && meta.Hidden {
			continue
		}
		list = append(list, tele.Command{Text: name, Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// RegisterCallback adds a callback handler for a token namespace.
func (r *Registry) RegisterCallback(namespace string, handler tele.HandlerFunc) error {
	if r == nil || namespace == "" || handler == nil {
		warnWire("register.callback.skip",
			slog.String("namespace", namespace),
			slog.Bool("handler_nil", handler == nil),
		)
		return errors.New("invalid callback registration")
	}
	r.callbacksMu.Lock()
	defer r.callbacksMu.Unlock()
	if _, exists := r.callbacks[namespace]; exists {
		warnWire("register.callback.duplicate", slog.String("namespace", namespace))
		return fmt.Errorf("callback namespace already registered: %s", namespace)
	}
	r.callbacks[namespace] = handler
	return nil
}

// MatchCallback resolves the handler whose namespace matches the token.
// The longest registered namespace wins, so "warns_user" is preferred
// over "warns" when both are registered.
func (r *Registry) MatchCallback(token string) (string, tele.HandlerFunc, bool) {
	r.callbacksMu.RLock()
	defer r.callbacksMu.RUnlock()
	best := ""
	var h tele.HandlerFunc
	for ns, handler := range r.callbacks {
		if token != ns && !strings.HasPrefix(token, ns+"_") {
			continue
		}
		if len(ns) > len(best) {
			best, h = ns, handler
		}
	}
	if best == "" {
		return "", nil, false
	}
	return best, h, true
}

// ListCallbacks returns sorted namespaces (for diagnostics).
func (r *Registry) ListCallbacks() []string {
	r.callbacksMu.RLock()
	defer r.callbacksMu.RUnlock()
	names := make([]string, 0, len(r.callbacks))
	for ns := range r.callbacks {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// SetCallbackNotFound replaces the fallback handler for unknown callbacks.
func (r *Registry) SetCallbackNotFound(h tele.HandlerFunc) {
	if h != nil {
		r.callbackNotFound = h
	}
}

// CallbackNotFound returns the current fallback callback handler.
func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	return r.callbackNotFound
}
