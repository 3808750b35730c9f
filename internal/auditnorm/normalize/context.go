package normalize

// unset is the holder value before any record of the event has donated one.
const unset = "0"

// Context carries the session id and process id of the current event to the
// records that follow the first one. The session id is the primary correlation
// key; the process id backs it up when ses is "unset".
type Context struct {
	sessionID string
	processID string
}

// NewContext returns a Context in its reset state.
func NewContext() *Context {
	c := &Context{}
	c.Reset()
	return c
}

// Reset clears the holders at the start of an event.
func (c *Context) Reset() {
	c.sessionID = unset
	c.processID = unset
}

// SessionID returns the current holder value.
func (c *Context) SessionID() string { return c.sessionID }

// ProcessID returns the current holder value.
func (c *Context) ProcessID() string { return c.processID }

// Observe applies the donor/inheritor rules for rec, which sits at position
// ordinal (1-based) of its event, and returns the ses and pid values to display.
//
// User, Syscall and Generic records donate on ordinal 1. After that, User and
// Generic records always display the holders, while Syscall records keep their
// own values and fall back to the holders. Place, Socket and Execve records
// only ever display the holders.
func (c *Context) Observe(cat Category, rec Record, ordinal int) (ses, pid *string) {
	switch cat {
	case User, Syscall, Generic:
		own := fieldPtr(rec, "ses")
		ownPid := fieldPtr(rec, "pid")
		if ordinal == 1 {
			if own != nil {
				c.sessionID = *own
			}
			if ownPid != nil {
				c.processID = *ownPid
			}
			return own, ownPid
		}
		if cat == Syscall {
			return orHolder(own, c.sessionID), orHolder(ownPid, c.processID)
		}
		return c.holders()
	default:
		return c.holders()
	}
}

func (c *Context) holders() (*string, *string) {
	ses, pid := c.sessionID, c.processID
	return &ses, &pid
}

func orHolder(v *string, holder string) *string {
	if v != nil {
		return v
	}
	return &holder
}
