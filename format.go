package codec

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/puzpuzpuz/xsync/v4"
)

type formatKey struct {
	name string
	cfg  Configuration
}

// formatCache avoids walking a configuration with reflection on every call.
// Configurations are immutable and comparable, so the rendering can be keyed by value.
var formatCache = xsync.NewMap[formatKey, string]()

var leniencyType = reflect.TypeOf(Leniency(0))

// FormatConfig renders cfg as a multi-line "<name>.Config [...]" block.
//
// Fields are taken from `codec:"label[,char]"` struct tags; untagged embedded structs are
// flattened and other untagged fields are skipped. The char option prints a byte as a
// quoted character, or null when it is 0.
func FormatConfig(name string, cfg Configuration) string {
	key := formatKey{name: name, cfg: cfg}
	if s, ok := formatCache.Load(key); ok {
		return s
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(".Config [")
	writeFields(&b, reflect.ValueOf(cfg))
	b.WriteString("\n]")
	s := b.String()

	formatCache.Store(key, s)
	return s
}

// HashConfig returns a hash derived solely from name and the fields of cfg.
func HashConfig(name string, cfg Configuration) uint64 {
	return xxhash.Sum64String(FormatConfig(name, cfg))
}

func writeFields(b *strings.Builder, v reflect.Value) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, tagged := f.Tag.Lookup("codec")
		if !tagged {
			if f.Anonymous {
				writeFields(b, v.Field(i))
			}
			continue
		}
		if tag == "-" {
			continue
		}
		label, opt, _ := strings.Cut(tag, ",")
		b.WriteString("\n    ")
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(formatValue(v.Field(i), opt))
	}
}

func formatValue(v reflect.Value, opt string) string {
	if v.Type() == leniencyType {
		return Leniency(v.Int()).String()
	}
	if opt == "char" {
		if v.Uint() == 0 {
			return "null"
		}
		return strconv.QuoteRune(rune(v.Uint()))
	}
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.String:
		return v.String()
	default:
		return v.Type().String()
	}
}
