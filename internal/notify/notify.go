// Package notify holds the transient user feedback state: at most one live
// success message and one live error message. Success messages auto-expire;
// the timer itself lives in the app layer (a tea.Tick tagged with the
// notification's sequence number), so expiry here is just a guarded clear.
package notify

import "time"

// SuccessTTL is how long a success notification stays visible unless
// superseded first.
const SuccessTTL = 3000 * time.Millisecond

// Kind distinguishes the two notification slots.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notification is one live message. Seq identifies it against scheduled
// expiry: a timer carrying an old Seq fires harmlessly after replacement.
type Notification struct {
	Kind      Kind
	Message   string
	CreatedAt time.Time
	Seq       uint64
}

// Center holds the live notifications. The zero value is ready to use.
// Methods never fail and have no side effects beyond internal state.
type Center struct {
	success *Notification
	err     *Notification
	seq     uint64
}

// Success replaces any live success notification and returns the new one so
// the caller can schedule its expiry.
func (c *Center) Success(message string) Notification {
	c.seq++
	n := Notification{Kind: KindSuccess, Message: message, CreatedAt: time.Now(), Seq: c.seq}
	c.success = &n
	return n
}

// Error replaces any live error notification. Errors never auto-expire; they
// stay until dismissed or replaced.
func (c *Center) Error(message string) Notification {
	c.seq++
	n := Notification{Kind: KindError, Message: message, CreatedAt: time.Now(), Seq: c.seq}
	c.err = &n
	return n
}

// Dismiss clears the named notification immediately. Any timer still pending
// for it becomes a no-op because the stored sequence is gone with it.
func (c *Center) Dismiss(kind Kind) {
	if kind == KindError {
		c.err = nil
		return
	}
	c.success = nil
}

// Expire clears the named notification only if it still carries seq, so a
// superseded notification's timer cannot clear its replacement. Reports
// whether anything was cleared.
func (c *Center) Expire(kind Kind, seq uint64) bool {
	n := c.get(kind)
	if n == nil || n.Seq != seq {
		return false
	}
	c.Dismiss(kind)
	return true
}

// SuccessNotification returns the live success notification, or nil.
func (c *Center) SuccessNotification() *Notification { return c.success }

// ErrorNotification returns the live error notification, or nil.
func (c *Center) ErrorNotification() *Notification { return c.err }

func (c *Center) get(kind Kind) *Notification {
	if kind == KindError {
		return c.err
	}
	return c.success
}
