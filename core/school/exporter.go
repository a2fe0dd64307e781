package school

import (
	"encoding/csv"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ExportCSV flattens a slice of flat record structs into CSV text: a header
// row built from the record type's field names (JSON tag names), then one
// row per record in field order. Embedded structs are flattened in place.
// An empty slice still yields the header row, so the export is always a
// well-formed table.
//
// Output is RFC 4180 quoted, so embedded commas and newlines survive; the
// exchange format is export-only and is not promised to round-trip through
// the bulk import parsers.
func ExportCSV(records interface{}) (string, error) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice {
		return "", errors.Errorf("school: ExportCSV wants a slice, got %T", records)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return "", errors.Errorf("school: ExportCSV wants a slice of structs, got %T", records)
	}
	header := fieldNames(elemType)

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", errors.Wrap(err, "writing csv header")
	}
	for i := 0; i < v.Len(); i++ {
		elem := reflect.Indirect(v.Index(i))
		if err := w.Write(fieldValues(elem)); err != nil {
			return "", errors.Wrap(err, "writing csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "flushing csv")
	}
	return buf.String(), nil
}

func fieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if fld.PkgPath != "" { // unexported
			continue
		}
		if fld.Anonymous && fld.Type.Kind() == reflect.Struct {
			names = append(names, fieldNames(fld.Type)...)
			continue
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = fld.Name
		}
		names = append(names, name)
	}
	return names
}

func fieldValues(v reflect.Value) []string {
	t := v.Type()
	values := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if fld.PkgPath != "" {
			continue
		}
		if fld.Anonymous && fld.Type.Kind() == reflect.Struct {
			values = append(values, fieldValues(v.Field(i))...)
			continue
		}
		if strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] == "-" {
			continue
		}
		values = append(values, formatValue(v.Field(i).Interface()))
	}
	return values
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%.2f", val)
	}
	return fmt.Sprint(v)
}
