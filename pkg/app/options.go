package app

import (
	"strconv"
)

// Options holds the key / value pairs of one configuration section,
// passed to a component during Load.
type Options struct {
	values map[string]string
}

func NewOptions(values map[string]string) *Options {
	if values == nil {
		values = map[string]string{}
	}
	return &Options{values: values}
}

func (o *Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Options) GetString(key string, fallback string) string {
	value, ok := o.values[key]
	if !ok || value == "" {
		return fallback
	}
	return value
}

func (o *Options) GetUint32(key string, fallback uint32) uint32 {
	value, ok := o.values[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return fallback
	}
	return uint32(parsed)
}

func (o *Options) GetInt(key string, fallback int) int {
	value, ok := o.values[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (o *Options) GetBool(key string, fallback bool) bool {
	value, ok := o.values[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
