package storage

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MapStorage 基于解码后的 map/slice 的存储实现
type MapStorage struct {
	data any
}

func NewMapStorage(data any) *MapStorage {
	return &MapStorage{data: data}
}

// Data 获取存储的原始数据
func (ms *MapStorage) Data() any {
	return ms.data
}

func (ms *MapStorage) Sub(key string) Storage {
	if key == "" {
		return ms
	}

	current := ms.data
	for _, k := range parseKey(key) {
		if current = getValueByKey(current, k); current == nil {
			break
		}
	}
	return NewMapStorage(current)
}

func (ms *MapStorage) ConvertTo(object any) error {
	rv := reflect.ValueOf(object)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Errorf("object must be a non-nil pointer, got %T", object)
	}
	return convertValue(ms.data, rv)
}

// parseKey 解析 "a.b[0].c" 为 ["a", "b", "0", "c"]
func parseKey(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
}

func getValueByKey(data any, key string) any {
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			if fmt.Sprint(k.Interface()) == key {
				return rv.MapIndex(k).Interface()
			}
		}
	case reflect.Slice, reflect.Array:
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= rv.Len() {
			return nil
		}
		return rv.Index(index).Interface()
	}
	return nil
}

// convertValue 将 src 转换到 dst
func convertValue(src any, dst reflect.Value) error {
	srcValue := reflect.ValueOf(src)
	if !srcValue.IsValid() {
		return nil
	}

	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			if !dst.CanSet() {
				return errors.New("destination is not settable")
			}
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return convertValue(src, dst.Elem())
	}

	for srcValue.Kind() == reflect.Ptr || srcValue.Kind() == reflect.Interface {
		if srcValue.IsNil() {
			return nil
		}
		srcValue = srcValue.Elem()
	}

	switch dst.Type() {
	case reflect.TypeOf(time.Duration(0)):
		return convertToDuration(srcValue, dst)
	case reflect.TypeOf(time.Time{}):
		return convertToTime(srcValue, dst)
	}

	switch dst.Kind() {
	case reflect.Interface:
		if dst.Type().NumMethod() != 0 {
			break
		}
		// 嵌套的 map 保留为 Storage，交给 ref.Convertable 转成构造函数的参数类型
		if srcValue.Kind() == reflect.Map {
			dst.Set(reflect.ValueOf(NewMapStorage(srcValue.Interface())))
		} else {
			dst.Set(srcValue)
		}
		return nil
	case reflect.Map:
		return convertToMap(srcValue, dst)
	case reflect.Slice:
		return convertToSlice(srcValue, dst)
	case reflect.Struct:
		return convertToStruct(srcValue, dst)
	case reflect.String:
		switch srcValue.Kind() {
		case reflect.String:
			dst.SetString(srcValue.String())
		default:
			dst.SetString(fmt.Sprint(srcValue.Interface()))
		}
		return nil
	case reflect.Bool:
		if srcValue.Kind() == reflect.String {
			b, err := strconv.ParseBool(srcValue.String())
			if err != nil {
				return errors.Wrapf(err, "parse bool %q failed", srcValue.String())
			}
			dst.SetBool(b)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if srcValue.Kind() == reflect.String {
			f, err := strconv.ParseFloat(srcValue.String(), 64)
			if err != nil {
				return errors.Wrapf(err, "parse number %q failed", srcValue.String())
			}
			srcValue = reflect.ValueOf(f)
		}
	}

	if srcValue.Type().AssignableTo(dst.Type()) {
		dst.Set(srcValue)
		return nil
	}
	if srcValue.Type().ConvertibleTo(dst.Type()) {
		dst.Set(srcValue.Convert(dst.Type()))
		return nil
	}
	return errors.Errorf("cannot convert %v to %v", srcValue.Type(), dst.Type())
}

func convertToDuration(src, dst reflect.Value) error {
	switch src.Kind() {
	case reflect.String:
		d, err := time.ParseDuration(src.String())
		if err != nil {
			return errors.Wrapf(err, "parse duration %q failed", src.String())
		}
		dst.Set(reflect.ValueOf(d))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.Set(reflect.ValueOf(time.Duration(src.Int())))
		return nil
	case reflect.Float32, reflect.Float64:
		// 浮点数视为秒
		dst.Set(reflect.ValueOf(time.Duration(src.Float() * float64(time.Second))))
		return nil
	}
	return errors.Errorf("cannot convert %v to time.Duration", src.Type())
}

func convertToTime(src, dst reflect.Value) error {
	if t, ok := src.Interface().(time.Time); ok {
		dst.Set(reflect.ValueOf(t))
		return nil
	}
	if src.Kind() != reflect.String {
		return errors.Errorf("cannot convert %v to time.Time", src.Type())
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, src.String()); err == nil {
			dst.Set(reflect.ValueOf(t))
			return nil
		}
	}
	return errors.Errorf("parse time %q failed", src.String())
}

func convertToMap(src, dst reflect.Value) error {
	if src.Kind() != reflect.Map {
		return errors.Errorf("cannot convert %v to %v", src.Type(), dst.Type())
	}
	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}

	keyType := dst.Type().Key()
	for _, key := range src.MapKeys() {
		value := reflect.New(dst.Type().Elem()).Elem()
		if err := convertValue(src.MapIndex(key).Interface(), value); err != nil {
			return errors.WithMessagef(err, "key %v", key.Interface())
		}
		k := reflect.New(keyType).Elem()
		if err := convertValue(key.Interface(), k); err != nil {
			return errors.WithMessagef(err, "key %v", key.Interface())
		}
		dst.SetMapIndex(k, value)
	}
	return nil
}

func convertToSlice(src, dst reflect.Value) error {
	// 单个值视为只有一个元素的列表，逗号分隔的字符串拆分为列表
	if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
		if src.Kind() == reflect.String {
			var items []any
			for _, s := range strings.Split(src.String(), ",") {
				if s = strings.TrimSpace(s); s != "" {
					items = append(items, s)
				}
			}
			src = reflect.ValueOf(items)
		} else {
			src = reflect.ValueOf([]any{src.Interface()})
		}
	}

	n := src.Len()
	slice := reflect.MakeSlice(dst.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := convertValue(src.Index(i).Interface(), slice.Index(i)); err != nil {
			return errors.WithMessagef(err, "index %d", i)
		}
	}
	dst.Set(slice)
	return nil
}

func convertToStruct(src, dst reflect.Value) error {
	if src.Kind() == reflect.Struct && src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}
	if src.Kind() != reflect.Map {
		return errors.Errorf("cannot convert %v to %v", src.Type(), dst.Type())
	}

	dstType := dst.Type()
	for i := 0; i < dstType.NumField(); i++ {
		field := dstType.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "-" {
			continue
		}

		value, ok := lookup(src, name)
		if !ok {
			continue
		}
		if err := convertValue(value, dst.Field(i)); err != nil {
			return errors.WithMessagef(err, "field %s", name)
		}
	}
	return nil
}

// fieldName 依次使用 cfg, json, yaml tag，都没有时使用字段名
func fieldName(field reflect.StructField) string {
	for _, tagKey := range []string{"cfg", "json", "yaml"} {
		if tag := field.Tag.Get(tagKey); tag != "" {
			if name, _, _ := strings.Cut(tag, ","); name != "" {
				return name
			}
		}
	}
	return field.Name
}

// lookup 先精确匹配 key，再忽略大小写匹配
func lookup(src reflect.Value, name string) (any, bool) {
	var fallback reflect.Value
	for _, k := range src.MapKeys() {
		ks := fmt.Sprint(k.Interface())
		if ks == name {
			return src.MapIndex(k).Interface(), true
		}
		if !fallback.IsValid() && strings.EqualFold(ks, name) {
			fallback = src.MapIndex(k)
		}
	}
	if fallback.IsValid() {
		return fallback.Interface(), true
	}
	return nil, false
}
