// Package bus connects the picker to the desktop session bus. It announces
// copied text so a compositor extension can paste it, and raises desktop
// notifications.
package bus

import (
	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	// Name is the well-known bus name the picker claims.
	Name = "dev.tableflip.EmojiPick"
	// Path is the object path signals are emitted from.
	Path dbus.ObjectPath = "/dev/tableflip/EmojiPick"
	// Interface carries the CopiedEmoji signal.
	Interface = "dev.tableflip.EmojiPick"
	// SignalCopied is emitted with the copied text as its only argument.
	SignalCopied = "CopiedEmoji"

	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Conn is the subset of *dbus.Conn the picker uses.
type Conn interface {
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

// Bus wraps a session bus connection.
type Bus struct {
	conn    Conn
	appName string
}

// Connect opens the session bus and claims Name. A name already owned by
// another instance is not an error; signals still go out.
func Connect(appName string) (*Bus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "bus: connect session bus")
	}
	if _, err := conn.RequestName(Name, dbus.NameFlagDoNotQueue); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "bus: request name %s", Name)
	}
	return New(conn, appName), nil
}

// New wraps an existing connection.
func New(conn Conn, appName string) *Bus {
	return &Bus{conn: conn, appName: appName}
}

// EmitCopied announces text on the bus.
func (b *Bus) EmitCopied(text string) error {
	return errors.Wrap(b.conn.Emit(Path, Interface+"."+SignalCopied, text), "bus: emit")
}

// Show raises a desktop notification.
func (b *Bus) Show(title, body string) error {
	obj := b.conn.Object(notifyDest, notifyPath)
	// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
	call := obj.Call(notifyMethod, 0,
		b.appName, uint32(0), "dialog-information", title, body,
		[]string{}, map[string]dbus.Variant{}, int32(-1))
	return errors.Wrap(call.Err, "bus: notify")
}

// Close releases the connection.
func (b *Bus) Close() error {
	return b.conn.Close()
}
