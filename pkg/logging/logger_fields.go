package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

// NodeName is the node name as given on the command line
func NodeName(name string) Field {
	return String("node_name", name)
}

func Port(p int) Field {
	return Int("port", p)
}

func Addr(a string) Field {
	return String("addr", a)
}

func Format(f string) Field {
	return String("format", f)
}

// Kind is the error taxonomy name, e.g. UnknownChain
func Kind(k string) Field {
	return String("kind", k)
}
