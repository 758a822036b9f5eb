package store

import "sync"

// Dialog names the application's modal dialogs.
type Dialog string

const (
	DialogAdd    Dialog = "add"
	DialogAuth   Dialog = "auth"
	DialogDelete Dialog = "delete"
	DialogEdit   Dialog = "edit"
	DialogInfo   Dialog = "info"
)

// Dialogs tracks which dialogs are visible. Names are not validated, an
// unknown name just occupies a stray key.
type Dialogs struct {
	mu   sync.Mutex
	open map[Dialog]bool
}

func NewDialogs() *Dialogs {
	return &Dialogs{open: map[Dialog]bool{}}
}

func (d *Dialogs) Open(name Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open[name] = true
}

func (d *Dialogs) Close(name Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open[name] = false
}

func (d *Dialogs) Toggle(name Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open[name] = !d.open[name]
}

func (d *Dialogs) IsOpen(name Dialog) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open[name]
}

// AnyOpen reports whether at least one dialog is visible.
func (d *Dialogs) AnyOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, v := range d.open {
		if v {
			return true
		}
	}
	return false
}
