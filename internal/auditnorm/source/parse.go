package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedLine is returned for lines that are not auditd records.
var ErrMalformedLine = errors.New("malformed audit line")

const (
	msgPrefix = "msg=audit("
	// enriched log_format appends interpreted fields after a group separator
	enrichedSep = "\x1d"
	eoeType     = "EOE"
)

// Record is one parsed auditd record.
type Record struct {
	typeName string
	id       string
	stamp    time.Time
	node     string
	fields   map[string]string
}

// TypeName returns the record type, e.g. "SYSCALL".
func (r *Record) TypeName() string { return r.typeName }

// Field returns the raw value for key.
func (r *Record) Field(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Time returns the event identifier "<sec>.<msec>:<serial>".
func (r *Record) Time() (string, bool) { return r.id, r.id != "" }

// Node returns the node= prefix, if the line had one.
func (r *Record) Node() (string, bool) { return r.node, r.node != "" }

// Stamp returns the parsed event timestamp.
func (r *Record) Stamp() time.Time { return r.stamp }

// ParseLine parses a single auditd text line such as
//
//	node=web1 type=SYSCALL msg=audit(1700000000.123:42): arch=c000003e syscall=257 ses=2 comm="cat"
func ParseLine(line string) (*Record, error) {
	if i := strings.Index(line, enrichedSep); i >= 0 {
		line = line[:i]
	}
	start := strings.Index(line, msgPrefix)
	if start < 0 {
		return nil, fmt.Errorf("%w: no %s header", ErrMalformedLine, msgPrefix)
	}
	end := strings.Index(line[start:], ")")
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated header", ErrMalformedLine)
	}
	end += start

	rec := &Record{fields: map[string]string{}}
	for _, kv := range splitPairs(line[:start]) {
		switch kv.key {
		case "type":
			rec.typeName = typeName(kv.value)
		case "node":
			rec.node = kv.value
		}
	}
	if rec.typeName == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedLine)
	}

	rec.id = line[start+len(msgPrefix) : end]
	stamp, err := parseStamp(rec.id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	rec.stamp = stamp

	body := strings.TrimPrefix(line[end+1:], ":")
	addFields(rec.fields, body)
	return rec, nil
}

// addFields stores the pairs of body into fields. A single-quoted value (the
// msg='...' block of user-space records) is stored as-is and its inner pairs
// are flattened in as well. Keys already present are kept.
func addFields(fields map[string]string, body string) {
	for _, kv := range splitPairs(body) {
		if _, ok := fields[kv.key]; !ok {
			fields[kv.key] = kv.value
		}
		if kv.nested {
			addFields(fields, kv.value)
		}
	}
}

func typeName(v string) string {
	if n, err := strconv.Atoi(v); err == nil {
		return fmt.Sprintf("UNKNOWN[%d]", n)
	}
	return v
}

// parseStamp parses "<sec>.<msec>:<serial>".
func parseStamp(id string) (time.Time, error) {
	ts, serial, ok := strings.Cut(id, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("event id %q has no serial", id)
	}
	if _, err := strconv.ParseUint(serial, 10, 64); err != nil {
		return time.Time{}, fmt.Errorf("event serial %q: %w", serial, err)
	}
	secs, frac, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("event seconds %q: %w", secs, err)
	}
	var msec int64
	if frac != "" {
		// fraction of a second, read as milliseconds
		frac = (frac + "00")[:3]
		if msec, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return time.Time{}, fmt.Errorf("event millis %q: %w", frac, err)
		}
	}
	return time.Unix(sec, msec*int64(time.Millisecond)).UTC(), nil
}

type pair struct {
	key    string
	value  string
	nested bool
}

// splitPairs tokenizes space separated key=value pairs. Values may be
// double-quoted (quotes are dropped) or single-quoted (marked nested).
// Tokens without '=' are ignored.
func splitPairs(s string) []pair {
	var out []pair
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		keyStart := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' {
			i++
		}
		if i >= len(s) || s[i] == ' ' {
			continue
		}
		key := s[keyStart:i]
		i++ // '='

		p := pair{key: key}
		switch {
		case i < len(s) && (s[i] == '"' || s[i] == '\''):
			quote := s[i]
			i++
			valStart := i
			for i < len(s) && s[i] != quote {
				i++
			}
			p.value = s[valStart:i]
			p.nested = quote == '\''
			if i < len(s) {
				i++
			}
		default:
			valStart := i
			for i < len(s) && s[i] != ' ' {
				i++
			}
			p.value = s[valStart:i]
		}
		if key != "" {
			out = append(out, p)
		}
	}
	return out
}
