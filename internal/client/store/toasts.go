package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastSeverity selects the visual style of a toast.
type ToastSeverity string

const (
	ToastSuccess ToastSeverity = "success"
	ToastInfo    ToastSeverity = "info"
	ToastWarning ToastSeverity = "warning"
	ToastDanger  ToastSeverity = "danger"
)

// Toast display defaults, applied to any field the caller leaves unset.
const (
	DefaultToastDuration  = 5 * time.Second
	DefaultToastPosition  = "top-right"
	DefaultToastAnimation = "slide"
)

// Toast is one notification in the queue.
type Toast struct {
	ID           string
	Severity     ToastSeverity
	Title        string
	Message      string
	Duration     time.Duration
	Position     string
	Animation    string
	PauseOnHover bool
}

// ToastInput is a toast without the store-assigned id; zero fields are
// filled from the defaults.
type ToastInput struct {
	Severity     ToastSeverity
	Title        string
	Message      string
	Duration     time.Duration
	Position     string
	Animation    string
	PauseOnHover *bool
}

// Toasts is the notification queue. The display layer is responsible for
// removing a toast after its duration elapses; the store only holds the
// sequence.
type Toasts struct {
	mu    sync.Mutex
	items []Toast
}

func NewToasts() *Toasts {
	return &Toasts{}
}

// Add assigns an id, fills unset display fields from the defaults and
// appends the toast. The assigned id is returned.
func (t *Toasts) Add(in ToastInput) string {
	toast := Toast{
		ID:           uuid.NewString(),
		Severity:     in.Severity,
		Title:        in.Title,
		Message:      in.Message,
		Duration:     in.Duration,
		Position:     in.Position,
		Animation:    in.Animation,
		PauseOnHover: true,
	}
	if toast.Duration == 0 {
		toast.Duration = DefaultToastDuration
	}
	if toast.Position == "" {
		toast.Position = DefaultToastPosition
	}
	if toast.Animation == "" {
		toast.Animation = DefaultToastAnimation
	}
	if in.PauseOnHover != nil {
		toast.PauseOnHover = *in.PauseOnHover
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, toast)
	return toast.ID
}

// Remove drops the toast with the given id. Unknown ids are a no-op.
func (t *Toasts) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.items[:0]
	for _, item := range t.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	t.items = kept
}

// ClearAll empties the queue.
func (t *Toasts) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = nil
}

// Items returns a copy of the queue in insertion order.
func (t *Toasts) Items() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}

func (t *Toasts) Success(title, message string) string {
	return t.Add(ToastInput{Severity: ToastSuccess, Title: title, Message: message})
}

func (t *Toasts) Info(title, message string) string {
	return t.Add(ToastInput{Severity: ToastInfo, Title: title, Message: message})
}

func (t *Toasts) Warning(title, message string) string {
	return t.Add(ToastInput{Severity: ToastWarning, Title: title, Message: message})
}

func (t *Toasts) Danger(title, message string) string {
	return t.Add(ToastInput{Severity: ToastDanger, Title: title, Message: message})
}
