package ref

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// TypeOptions 按名称构造对象的描述，Namespace + Type 定位构造函数，Options 作为其参数
type TypeOptions struct {
	Namespace string `cfg:"namespace"`
	Type      string `cfg:"type"`
	Options   any    `cfg:"options"`
}

// Convertable 可以转换成构造函数参数类型的配置数据，例如 cfg 中的 Storage
type Convertable interface {
	ConvertTo(object any) error
}

type constructor struct {
	fn           any
	fnValue      reflect.Value
	hasOptions   bool
	returnsError bool
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func newConstructor(fn any) (*constructor, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, errors.New("constructor must be a function")
	}

	ft := fv.Type()
	if ft.NumIn() > 1 {
		return nil, errors.Errorf("constructor must have 0 or 1 input parameters, got %d", ft.NumIn())
	}
	if ft.NumOut() != 1 && ft.NumOut() != 2 {
		return nil, errors.Errorf("constructor must have 1 or 2 return values, got %d", ft.NumOut())
	}
	if ft.NumOut() == 2 && !ft.Out(1).Implements(errorType) {
		return nil, errors.New("second return value must be error type")
	}

	return &constructor{
		fn:           fn,
		fnValue:      fv,
		hasOptions:   ft.NumIn() == 1,
		returnsError: ft.NumOut() == 2,
	}, nil
}

func (c *constructor) new(options any) (any, error) {
	var args []reflect.Value
	if c.hasOptions {
		arg, err := c.argument(options)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	results := c.fnValue.Call(args)
	if c.returnsError && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

// argument 把 options 转换为构造函数的参数，nil 时传入参数类型的零值
func (c *constructor) argument(options any) (reflect.Value, error) {
	paramType := c.fnValue.Type().In(0)

	if options == nil {
		if paramType.Kind() == reflect.Ptr {
			return reflect.New(paramType.Elem()), nil
		}
		return reflect.Zero(paramType), nil
	}

	if convertable, ok := options.(Convertable); ok {
		target := reflect.New(paramType)
		if paramType.Kind() == reflect.Ptr {
			target = reflect.New(paramType.Elem())
		}
		if err := convertable.ConvertTo(target.Interface()); err != nil {
			return reflect.Value{}, errors.WithMessagef(err, "convert options to %v failed", paramType)
		}
		if paramType.Kind() == reflect.Ptr {
			return target, nil
		}
		return target.Elem(), nil
	}

	value := reflect.ValueOf(options)
	if !value.Type().AssignableTo(paramType) {
		return reflect.Value{}, errors.Errorf("options type %v is not assignable to %v", value.Type(), paramType)
	}
	return value, nil
}

var constructors sync.Map

func key(namespace, typ string) string {
	return namespace + ":" + typ
}

// Register 注册构造函数，重复注册同一个函数是安全的
func Register(namespace string, typ string, fn any) error {
	k := key(namespace, typ)
	if v, ok := constructors.Load(k); ok {
		if reflect.ValueOf(v.(*constructor).fn).Pointer() == reflect.ValueOf(fn).Pointer() {
			return nil
		}
		return errors.Errorf("constructor for %s already registered with different function", k)
	}

	c, err := newConstructor(fn)
	if err != nil {
		return errors.WithMessagef(err, "register %s failed", k)
	}
	constructors.Store(k, c)
	return nil
}

// RegisterT 以 T 的包路径和类型名作为 namespace 和 type 注册
func RegisterT[T any](fn any) error {
	namespace, typ, err := typeName[T]()
	if err != nil {
		return err
	}
	return Register(namespace, typ, fn)
}

func MustRegister(namespace string, typ string, fn any) {
	if err := Register(namespace, typ, fn); err != nil {
		panic(err)
	}
}

func MustRegisterT[T any](fn any) {
	if err := RegisterT[T](fn); err != nil {
		panic(err)
	}
}

// New 根据 namespace 和 type 查找构造函数并创建对象
func New(namespace string, typ string, options any) (any, error) {
	v, ok := constructors.Load(key(namespace, typ))
	if !ok {
		return nil, errors.Errorf("constructor not found for %s", key(namespace, typ))
	}
	return v.(*constructor).new(options)
}

func NewT[T any](options any) (T, error) {
	var zero T
	namespace, typ, err := typeName[T]()
	if err != nil {
		return zero, err
	}

	obj, err := New(namespace, typ, options)
	if err != nil {
		return zero, err
	}
	result, ok := obj.(T)
	if !ok {
		return zero, errors.Errorf("created object %T is not of type %T", obj, zero)
	}
	return result, nil
}

func typeName[T any]() (string, string, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return "", "", errors.Errorf("cannot determine package path or type name for %v", t)
	}
	return t.PkgPath(), t.Name(), nil
}
