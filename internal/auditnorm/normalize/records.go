package normalize

// NormalizedRecord is a category-specific record ready to be rendered. Values
// returns the fields in serialization order; nil entries are absent fields.
type NormalizedRecord interface {
	Category() Category
	Values() []*string
}

// Header is shared by every normalized record. Flavor is the category tag and
// Type the raw record type name.
type Header struct {
	Flavor string
	Type   string
	Time   *string
	Node   *string
}

func (h Header) values() []*string {
	flavor, typ := h.Flavor, h.Type
	return []*string{&flavor, &typ, h.Time, h.Node}
}

// PlaceRecord describes a file system location (CWD and PATH records).
type PlaceRecord struct {
	Header
	SessionID *string
	ProcessID *string
	Cwd       *string
	PathName  *string
	Inode     *string
	Mode      *string
	OwnerUID  *string
	OwnerGID  *string
}

func (r *PlaceRecord) Category() Category { return Place }

func (r *PlaceRecord) Values() []*string {
	return append(r.Header.values(),
		r.SessionID, r.ProcessID, r.Cwd, r.PathName, r.Inode, r.Mode, r.OwnerUID, r.OwnerGID)
}

// UserRecord describes user-space identity and session messages (USER_*).
type UserRecord struct {
	Header
	SessionID *string
	AUID      *string
	EGID      *string
	EUID      *string
	FSGID     *string
	FSUID     *string
	GID       *string
	SUID      *string
	SGID      *string
	UID       *string
	PID       *string
	Success   *string
	Exit      *string
	Term      *string
	Exe       *string
}

func (r *UserRecord) Category() Category { return User }

func (r *UserRecord) Values() []*string {
	return append(r.Header.values(),
		r.SessionID, r.AUID, r.EGID, r.EUID, r.FSGID, r.FSUID, r.GID, r.SUID, r.SGID,
		r.UID, r.PID, r.Success, r.Exit, r.Term, r.Exe)
}

// SyscallRecord describes a system call.
type SyscallRecord struct {
	Header
	SessionID  *string
	AUID       *string
	SyscallNum *string
	Key        *string
	Comm       *string
	Exe        *string
	Arg0       *string
	Arg1       *string
	Arg2       *string
	UID        *string
	GID        *string
	EUID       *string
	EGID       *string
	FSUID      *string
	FSGID      *string
	SUID       *string
	SGID       *string
	PID        *string
	PPID       *string
	TTY        *string
	Success    *string
	Exit       *string
}

func (r *SyscallRecord) Category() Category { return Syscall }

func (r *SyscallRecord) Values() []*string {
	return append(r.Header.values(),
		r.SessionID, r.AUID, r.SyscallNum, r.Key, r.Comm, r.Exe, r.Arg0, r.Arg1, r.Arg2,
		r.UID, r.GID, r.EUID, r.EGID, r.FSUID, r.FSGID, r.SUID, r.SGID,
		r.PID, r.PPID, r.TTY, r.Success, r.Exit)
}

// SocketRecord carries a socket address.
type SocketRecord struct {
	Header
	SessionID     *string
	ProcessID     *string
	SocketAddress *string
}

func (r *SocketRecord) Category() Category { return Socket }

func (r *SocketRecord) Values() []*string {
	return append(r.Header.values(), r.SessionID, r.ProcessID, r.SocketAddress)
}

// ExecveRecord carries the argument vector of an execve call.
type ExecveRecord struct {
	Header
	SessionID *string
	ProcessID *string
	Argc      *string
	Args      *string
}

func (r *ExecveRecord) Category() Category { return Execve }

func (r *ExecveRecord) Values() []*string {
	return append(r.Header.values(), r.SessionID, r.ProcessID, r.Argc, r.Args)
}

// GenericRecord is the catch-all shape. The session id is rendered twice,
// before auid and again after ppid.
type GenericRecord struct {
	Header
	SessionID *string
	AUID      *string
	Key       *string
	Comm      *string
	Exe       *string
	Arg0      *string
	Arg1      *string
	Arg2      *string
	UID       *string
	GID       *string
	EUID      *string
	EGID      *string
	FSUID     *string
	FSGID     *string
	SUID      *string
	SGID      *string
	ProcessID *string
	PPID      *string
	TTY       *string
	Terminal  *string
	Success   *string
	Exit      *string
}

func (r *GenericRecord) Category() Category { return Generic }

func (r *GenericRecord) Values() []*string {
	return append(r.Header.values(),
		r.SessionID, r.AUID, r.Key, r.Comm, r.Exe, r.Arg0, r.Arg1, r.Arg2,
		r.UID, r.GID, r.EUID, r.EGID, r.FSUID, r.FSGID, r.SUID, r.SGID,
		r.ProcessID, r.PPID, r.SessionID, r.TTY, r.Terminal, r.Success, r.Exit)
}
