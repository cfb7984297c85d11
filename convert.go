// File: props/convert.go
package props

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ConversionService converts a raw property value into the type pointed to
// by target. It must support scalars, sequences, and mappings, with weak
// typing across them (e.g. "8080" into an int, a map into a struct).
type ConversionService interface {
	Convert(value any, target any) error
}

// DefaultConversionService is the mapstructure-backed conversion service
// used when no custom one is supplied. Struct fields map through the
// "props" tag.
type DefaultConversionService struct{}

func (DefaultConversionService) Convert(value any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("conversion target must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "props",
		WeaklyTypedInput: true,
		DecodeHook:       defaultDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	return decoder.Decode(value)
}

// defaultDecodeHook composes the conversions applied on top of weak typing:
// durations, RFC3339 timestamps, comma-separated slices, and common network
// types.
func defaultDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetTypesHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToNetTypesHookFunc parses strings into net.IP, net.IPNet and
// url.URL targets, by value or pointer.
func stringToNetTypesHookFunc() mapstructure.DecodeHookFunc {
	ipType := reflect.TypeOf(net.IP{})
	ipNetType := reflect.TypeOf(net.IPNet{})
	urlType := reflect.TypeOf(url.URL{})

	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		isPtr := t.Kind() == reflect.Ptr
		elem := t
		if isPtr {
			elem = t.Elem()
		}
		str := reflect.ValueOf(data).String()

		switch elem {
		case ipType:
			ip := net.ParseIP(str)
			if ip == nil {
				return nil, fmt.Errorf("invalid IP address: %q", str)
			}
			return ip, nil
		case ipNetType:
			_, ipnet, err := net.ParseCIDR(str)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR: %w", err)
			}
			if isPtr {
				return ipnet, nil
			}
			return *ipnet, nil
		case urlType:
			u, err := url.Parse(str)
			if err != nil {
				return nil, fmt.Errorf("invalid URL: %w", err)
			}
			if isPtr {
				return u, nil
			}
			return *u, nil
		}
		return data, nil
	}
}

// convertTo converts value into a fresh instance of t via the service.
func convertTo(cs ConversionService, value any, t reflect.Type) (any, error) {
	ptr := reflect.New(t)
	if err := cs.Convert(value, ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}
