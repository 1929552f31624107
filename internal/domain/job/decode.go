package job

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	uuidBytesType = reflect.TypeOf([16]byte{})
)

// timestampLayouts are tried in order when a timestamp arrives as text
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// DecodeRow decodes a store row into out using the given struct tag for
// column names. Text timestamps and binary uuids are converted on the way.
func DecodeRow(row Row, out any, tag string) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tag,
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			uuidBytesHook,
			timestampHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(row)
}

func uuidBytesHook(from, _ reflect.Type, data any) (any, error) {
	if from != uuidBytesType {
		return data, nil
	}
	return uuid.UUID(data.([16]byte)).String(), nil
}

func timestampHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseTimestamp(reflect.ValueOf(data).String())
}

// ParseTimestamp parses the timestamp formats the remote store emits
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Stringify renders a loosely typed column value as text; nil becomes ""
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case [16]byte:
		return uuid.UUID(x).String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
