package normalize

import "strings"

// Category is the semantic kind assigned to every raw record.
type Category int

const (
	Generic Category = iota
	Place
	User
	Syscall
	Socket
	Execve
)

var categoryNames = [...]string{
	Generic: "Generic",
	Place:   "Place",
	User:    "User",
	Syscall: "Syscall",
	Socket:  "Socket",
	Execve:  "Execve",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[Generic]
	}
	return categoryNames[c]
}

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{Place, User, Syscall, Socket, Execve, Generic}
}

// Classify maps a record type name to its category. The case order is the
// precedence order and must not be rearranged: "CWD"/"PATH" win over
// everything else, internal daemon and service records fold into Generic
// before the socket and execve checks run.
func Classify(typeName string) Category {
	switch {
	case strings.Contains(typeName, "CWD"), strings.Contains(typeName, "PATH"):
		return Place
	case strings.Contains(typeName, "SYSCALL"):
		return Syscall
	case strings.HasPrefix(typeName, "USER_"):
		return User
	case strings.Contains(typeName, "DAEMON"), strings.Contains(typeName, "SERVICE"):
		return Generic
	case strings.Contains(typeName, "SOCKADDR"):
		return Socket
	case strings.Contains(typeName, "EXECVE"):
		return Execve
	default:
		return Generic
	}
}
