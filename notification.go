package vtterm

// NotificationPayload carries the fields of an OSC 99 desktop notification
// request, covering both the single-shot form and the multi-field form used
// by terminals that support actions/urgency/sound.
type NotificationPayload struct {
	ID          string
	Done        bool
	PayloadType string // "title", "body", "close", "?" (capability query), ...
	Encoding    string
	Actions     []string
	TrackClose  bool
	Timeout     int
	AppName     string
	Type        string
	IconName    string
	IconCacheID string
	Sound       string
	Urgency     int
	Occasion    string
	Data        []byte
}

// NotificationProvider handles OSC 99 desktop notification requests.
// Notify returns a query-response payload to send back to the child process
// (already wrapped as an OSC 99 string), or "" if no response is needed.
type NotificationProvider interface {
	Notify(payload *NotificationPayload) string
}

// NoopNotification discards all notifications and never replies.
type NoopNotification struct{}

func (NoopNotification) Notify(payload *NotificationPayload) string { return "" }

var _ NotificationProvider = NoopNotification{}

// WithNotification sets the handler for desktop notification events (OSC 99).
func WithNotification(p NotificationProvider) Option {
	return func(t *Emulator) {
		t.notificationProvider = p
	}
}

// SetNotificationProvider sets the notification provider at runtime.
func (t *Emulator) SetNotificationProvider(p NotificationProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notificationProvider = p
}

// NotificationProvider returns the current notification provider.
func (t *Emulator) NotificationProvider() NotificationProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.notificationProvider
}

// DesktopNotification handles an OSC 99 desktop notification request,
// dispatching through middleware before forwarding to the configured
// NotificationProvider and writing back any query response it returns.
func (t *Emulator) DesktopNotification(payload *NotificationPayload) {
	if t.middleware != nil && t.middleware.DesktopNotification != nil {
		t.middleware.DesktopNotification(payload, t.desktopNotificationInternal)
		return
	}
	t.desktopNotificationInternal(payload)
}

func (t *Emulator) desktopNotificationInternal(payload *NotificationPayload) {
	t.mu.RLock()
	provider := t.notificationProvider
	t.mu.RUnlock()

	if provider == nil {
		return
	}

	reply := provider.Notify(payload)
	if reply != "" {
		t.writeResponseString(reply)
	}
	if payload != nil {
		t.fireMessage(string(payload.Data))
	}
}
