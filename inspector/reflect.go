package inspector

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract the visible fields of a component.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}

		fv := v.Field(i)
		if widget == WidgetAuto {
			widget = WidgetLabel
			if fv.Kind() == reflect.Bool {
				widget = WidgetBool
			}
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// ComponentName returns the type name of a component.
func ComponentName(component any) string {
	t := reflect.TypeOf(component)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// FormatField formats a field for its widget.
func FormatField(f Field) string {
	switch f.Widget {
	case WidgetAngle:
		if rad, ok := f.Value.(float64); ok {
			return fmt.Sprintf("%.3f rad (%.0f deg)", rad, rad*180/math.Pi)
		}
	case WidgetBool:
		if b, ok := f.Value.(bool); ok {
			if b {
				return "on"
			}
			return "off"
		}
	}
	return FormatValue(f.Value, f.Options["fmt"])
}
