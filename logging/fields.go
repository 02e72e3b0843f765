package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Field aliases the zap field type so engine packages only import this
// package for logging.
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

func Time(key string, val time.Time) Field {
	return zap.Time(key, val)
}

func Error(err error) Field {
	return zap.Error(err)
}

// Stringer logs any fmt.Stringer under the given key, used for the
// num types.
func Stringer(key string, val fmt.Stringer) Field {
	return zap.Stringer(key, val)
}
