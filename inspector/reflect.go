package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Widget selects how a component field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetVec3
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"bool":  WidgetBool,
	"vec3":  WidgetVec3,
	"skip":  WidgetSkip,
}

var vec3Type = reflect.TypeFor[mgl64.Vec3]()

// Tag is a parsed `inspect` struct tag:
//
//	`inspect:"label,fmt:%.3f"`
//	`inspect:"vec3,fmt:%.2f"`
//	`inspect:"bar,max:12"`
//	`inspect:"skip"`
//
// Unknown widgets fall back to auto detection. Unknown options are ignored.
type Tag struct {
	Widget Widget
	Format string
	Max    float64 // bar full scale, 1 when unset
}

// ParseTag parses the value of an inspect struct tag.
func ParseTag(raw string) Tag {
	tag := Tag{Max: 1}
	name, opts, _ := strings.Cut(raw, ",")
	tag.Widget = widgetNames[strings.TrimSpace(name)]

	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			tag.Format = val
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m > 0 {
				tag.Max = m
			}
		}
	}
	return tag
}

// Field is one exported component field ready to draw.
type Field struct {
	Name  string
	Value any
	Tag
}

// ExtractFields lists the exported fields of a component struct (or pointer to one),
// skipping fields tagged `inspect:"skip"`.
func ExtractFields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := ParseTag(sf.Tag.Get("inspect"))
		if tag.Widget == WidgetSkip {
			continue
		}
		fv := v.Field(i)
		if tag.Widget == WidgetAuto {
			tag.Widget = detectWidget(fv.Type())
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Tag: tag})
	}
	return fields
}

// ComponentName is the bare type name of a component, used as a section title.
func ComponentName(component any) string {
	t := reflect.TypeOf(component)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func detectWidget(t reflect.Type) Widget {
	switch {
	case t == vec3Type:
		return WidgetVec3
	case t.Kind() == reflect.Bool:
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue renders a field value. Floats and vectors default to two decimals.
func FormatValue(value any, format string) string {
	if v, ok := value.(mgl64.Vec3); ok {
		return FormatVec3(v, format)
	}
	if format != "" {
		return fmt.Sprintf(format, value)
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	if f, ok := value.(float32); ok {
		return strconv.FormatFloat(float64(f), 'f', 2, 32)
	}
	return fmt.Sprint(value)
}

// FormatVec3 formats each component of v with format (default %.2f).
func FormatVec3(v mgl64.Vec3, format string) string {
	if format == "" {
		format = "%.2f"
	}
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf(format, c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NumericValue reports value as a float64 for any integer or float kind.
func NumericValue(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch {
	case !v.IsValid():
		return 0, false
	case v.CanFloat():
		return v.Float(), true
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	}
	return 0, false
}
