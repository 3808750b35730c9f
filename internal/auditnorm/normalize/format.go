package normalize

import (
	"strconv"
	"strings"
)

// NullMarker is rendered in place of every absent field so that each record
// type always has the same column count.
const NullMarker = "(null)"

// Line is one rendered output line plus the positional metadata it was built from.
type Line struct {
	EventOrdinal  int
	RecordCount   int
	RecordOrdinal int
	Category      Category
	Text          string
}

// Format renders "event:count:ordinal f1 f2 ... fN". Field values are not
// escaped; a value holding a space or colon makes the line ambiguous.
func Format(eventOrdinal, recordCount, recordOrdinal int, rec NormalizedRecord) string {
	values := rec.Values()
	var b strings.Builder
	b.WriteString(strconv.Itoa(eventOrdinal))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(recordCount))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(recordOrdinal))
	for _, v := range values {
		b.WriteByte(' ')
		if v == nil {
			b.WriteString(NullMarker)
			continue
		}
		b.WriteString(*v)
	}
	return b.String()
}
