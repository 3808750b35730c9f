package normalize

import (
	"strconv"
	"strings"
)

// Extract builds the normalized record for rec. ses and pid are the values
// the Context decided to display.
func Extract(cat Category, rec Record, ses, pid *string) NormalizedRecord {
	h := header(cat, rec)
	switch cat {
	case Place:
		return loadPlace(h, rec, ses, pid)
	case User:
		return loadUser(h, rec, ses, pid)
	case Syscall:
		return loadSyscall(h, rec, ses, pid)
	case Socket:
		return &SocketRecord{
			Header:        h,
			SessionID:     ses,
			ProcessID:     pid,
			SocketAddress: fieldPtr(rec, "saddr"),
		}
	case Execve:
		return &ExecveRecord{
			Header:    h,
			SessionID: ses,
			ProcessID: pid,
			Argc:      fieldPtr(rec, "argc"),
			Args:      execveArgs(rec),
		}
	default:
		return loadGeneric(h, rec, ses, pid)
	}
}

func header(cat Category, rec Record) Header {
	h := Header{Flavor: cat.String(), Type: rec.TypeName()}
	if t, ok := rec.Time(); ok {
		h.Time = &t
	}
	if n, ok := rec.Node(); ok {
		h.Node = &n
	}
	return h
}

func loadPlace(h Header, rec Record, ses, pid *string) *PlaceRecord {
	return &PlaceRecord{
		Header:    h,
		SessionID: ses,
		ProcessID: pid,
		Cwd:       fieldPtr(rec, "cwd"),
		PathName:  fieldPtr(rec, "name"),
		Inode:     fieldPtr(rec, "inode"),
		Mode:      fieldPtr(rec, "mode"),
		OwnerUID:  fieldPtr(rec, "ouid"),
		OwnerGID:  fieldPtr(rec, "ogid"),
	}
}

func loadUser(h Header, rec Record, ses, pid *string) *UserRecord {
	success := fieldPtr(rec, "success")
	if success == nil {
		// user-space messages report their outcome as res=success|failed
		success = fieldPtr(rec, "res")
	}
	return &UserRecord{
		Header:    h,
		SessionID: ses,
		AUID:      fieldPtr(rec, "auid"),
		EGID:      fieldPtr(rec, "egid"),
		EUID:      fieldPtr(rec, "euid"),
		FSGID:     fieldPtr(rec, "fsgid"),
		FSUID:     fieldPtr(rec, "fsuid"),
		GID:       fieldPtr(rec, "gid"),
		SUID:      fieldPtr(rec, "suid"),
		SGID:      fieldPtr(rec, "sgid"),
		UID:       fieldPtr(rec, "uid"),
		PID:       pid,
		Success:   success,
		Exit:      fieldPtr(rec, "exit"),
		Term:      fieldPtr(rec, "terminal"),
		Exe:       fieldPtr(rec, "exe"),
	}
}

func loadSyscall(h Header, rec Record, ses, pid *string) *SyscallRecord {
	return &SyscallRecord{
		Header:     h,
		SessionID:  ses,
		AUID:       fieldPtr(rec, "auid"),
		SyscallNum: fieldPtr(rec, "syscall"),
		Key:        fieldPtr(rec, "key"),
		Comm:       fieldPtr(rec, "comm"),
		Exe:        fieldPtr(rec, "exe"),
		Arg0:       fieldPtr(rec, "a0"),
		Arg1:       fieldPtr(rec, "a1"),
		Arg2:       fieldPtr(rec, "a2"),
		UID:        fieldPtr(rec, "uid"),
		GID:        fieldPtr(rec, "gid"),
		EUID:       fieldPtr(rec, "euid"),
		EGID:       fieldPtr(rec, "egid"),
		FSUID:      fieldPtr(rec, "fsuid"),
		FSGID:      fieldPtr(rec, "fsgid"),
		SUID:       fieldPtr(rec, "suid"),
		SGID:       fieldPtr(rec, "sgid"),
		PID:        pid,
		PPID:       fieldPtr(rec, "ppid"),
		TTY:        fieldPtr(rec, "tty"),
		Success:    fieldPtr(rec, "success"),
		Exit:       fieldPtr(rec, "exit"),
	}
}

func loadGeneric(h Header, rec Record, ses, pid *string) *GenericRecord {
	return &GenericRecord{
		Header:    h,
		SessionID: ses,
		AUID:      fieldPtr(rec, "auid"),
		Key:       fieldPtr(rec, "key"),
		Comm:      fieldPtr(rec, "comm"),
		Exe:       fieldPtr(rec, "exe"),
		Arg0:      fieldPtr(rec, "a0"),
		Arg1:      fieldPtr(rec, "a1"),
		Arg2:      fieldPtr(rec, "a2"),
		UID:       fieldPtr(rec, "uid"),
		GID:       fieldPtr(rec, "gid"),
		EUID:      fieldPtr(rec, "euid"),
		EGID:      fieldPtr(rec, "egid"),
		FSUID:     fieldPtr(rec, "fsuid"),
		FSGID:     fieldPtr(rec, "fsgid"),
		SUID:      fieldPtr(rec, "suid"),
		SGID:      fieldPtr(rec, "sgid"),
		ProcessID: pid,
		PPID:      fieldPtr(rec, "ppid"),
		TTY:       fieldPtr(rec, "tty"),
		Terminal:  fieldPtr(rec, "terminal"),
		Success:   fieldPtr(rec, "success"),
		Exit:      fieldPtr(rec, "exit"),
	}
}

// execveArgs joins a0..a(argc-1). Arguments missing from the record are skipped;
// nil when argc is absent, unparseable, or no argument is present.
func execveArgs(rec Record) *string {
	raw, ok := rec.Field("argc")
	if !ok {
		return nil
	}
	argc, err := strconv.Atoi(raw)
	if err != nil || argc <= 0 {
		return nil
	}
	args := make([]string, 0, argc)
	for i := range argc {
		if a, ok := rec.Field("a" + strconv.Itoa(i)); ok {
			args = append(args, a)
		}
	}
	if len(args) == 0 {
		return nil
	}
	s := strings.Join(args, " ")
	return &s
}

// fieldPtr returns a pointer to the raw value, or nil if the record lacks key.
func fieldPtr(rec Record, key string) *string {
	if v, ok := rec.Field(key); ok {
		return &v
	}
	return nil
}
