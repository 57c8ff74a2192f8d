package controls

// Notification is the kind of event a Trackball emits.
type Notification int

const (
	// NotifyStart is emitted when a gesture begins.
	NotifyStart Notification = iota
	// NotifyChange is emitted when the camera moved during Update or Reset.
	NotifyChange
	// NotifyEnd is emitted when a gesture ends.
	NotifyEnd
)

func (n Notification) String() string {
	switch n {
	case NotifyStart:
		return "start"
	case NotifyChange:
		return "change"
	case NotifyEnd:
		return "end"
	}
	return "unknown"
}

// Listener receives notifications it subscribed to.
type Listener func(n Notification)

// ListenerID identifies a registered listener.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// notifier is a publish/subscribe registry keyed by notification kind.
type notifier struct {
	nextID    ListenerID
	listeners map[Notification][]listenerEntry
}

func (n *notifier) subscribe(kind Notification, fn Listener) ListenerID {
	if n.listeners == nil {
		n.listeners = make(map[Notification][]listenerEntry)
	}
	n.nextID++
	n.listeners[kind] = append(n.listeners[kind], listenerEntry{id: n.nextID, fn: fn})
	return n.nextID
}

func (n *notifier) unsubscribe(id ListenerID) bool {
	for kind, list := range n.listeners {
		for i, e := range list {
			if e.id == id {
				n.listeners[kind] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (n *notifier) publish(kind Notification) {
	list := append([]listenerEntry(nil), n.listeners[kind]...)
	for _, e := range list {
		e.fn(kind)
	}
}

func (n *notifier) clear() {
	n.listeners = nil
}
