package weavetest

import (
	"io/ioutil"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/iov-one/junobox/codec"
)

var (
	protoMessageRx = regexp.MustCompile(`^\s*(message|enum)\s+(\w+)\s*\{`)
	protoFieldRx   = regexp.MustCompile(`^\s*(repeated\s+)?([\w.]+)\s+\w+\s*=\s*(\d+)\s*;`)
)

var protoVarints = map[string]bool{
	"bool": true, "int32": true, "int64": true,
	"uint32": true, "uint64": true, "sint32": true, "sint64": true,
}

// AssertProtoFields ensures that the serialized form of m uses exactly the
// fields declared for the message in the given .proto file, each with the
// wire type of its declared type. Every field of m must be set to a non
// zero value, so that the encoder does not omit it.
func AssertProtoFields(t testing.TB, protoFile, message string, m codec.Marshaller) {
	t.Helper()

	want, err := declaredProtoFields(protoFile, message)
	if err != nil {
		t.Fatalf("cannot read %s: %s", protoFile, err)
	}
	if len(want) == 0 {
		t.Fatalf("message %s not declared in %s", message, protoFile)
	}

	raw, err := m.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal %s: %s", message, err)
	}
	got := make(map[int]bool)
	err = codec.Decode(raw, func(f *codec.Field) error {
		_, err := f.Uvarint()
		got[f.Num] = err == nil
		return nil
	})
	if err != nil {
		t.Fatalf("cannot decode %s: %s", message, err)
	}

	for num, varint := range want {
		isVarint, ok := got[num]
		switch {
		case !ok:
			t.Errorf("%s: field %d not serialized", message, num)
		case isVarint != varint:
			t.Errorf("%s: field %d has wrong wire type", message, num)
		}
	}
	for num := range got {
		if _, ok := want[num]; !ok {
			t.Errorf("%s: field %d not declared", message, num)
		}
	}
}

// declaredProtoFields returns the field numbers of a message mapped to
// whether the field uses the varint wire type. Nested oneof blocks are
// flattened into the message.
func declaredProtoFields(protoFile, message string) (map[int]bool, error) {
	raw, err := ioutil.ReadFile(protoFile)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(raw), "\n")

	enums := make(map[string]bool)
	for _, l := range lines {
		if m := protoMessageRx.FindStringSubmatch(l); m != nil && m[1] == "enum" {
			enums[m[2]] = true
		}
	}

	fields := make(map[int]bool)
	depth := 0
	for _, l := range lines {
		if depth == 0 {
			if m := protoMessageRx.FindStringSubmatch(l); m != nil && m[1] == "message" && m[2] == message {
				depth = 1
			}
			continue
		}
		depth += strings.Count(l, "{") - strings.Count(l, "}")
		if depth == 0 {
			break
		}
		m := protoFieldRx.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, err
		}
		// Repeated scalars are packed.
		fields[num] = m[1] == "" && (protoVarints[m[2]] || enums[m[2]])
	}
	return fields, nil
}

// ProtoMessages returns the names of all messages declared in a .proto
// file, sorted.
func ProtoMessages(t testing.TB, protoFile string) []string {
	t.Helper()
	raw, err := ioutil.ReadFile(protoFile)
	if err != nil {
		t.Fatalf("cannot read %s: %s", protoFile, err)
	}
	var names []string
	for _, l := range strings.Split(string(raw), "\n") {
		if m := protoMessageRx.FindStringSubmatch(l); m != nil && m[1] == "message" {
			names = append(names, m[2])
		}
	}
	sort.Strings(names)
	return names
}
