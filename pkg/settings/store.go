package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Store reads shop configuration values by slash-separated path, e.g.
// "general/cutoff_time". Accessors are typed: a value of the wrong shape is a
// CONFIG_ERROR, never a silent coercion. Missing keys yield zero values so the
// caller can layer defaults on top.
type Store interface {
	Has(path string) bool
	String(path string) (string, error)
	Bool(path string) (bool, error)
	Int(path string) (int, error)
	StringSlice(path string) ([]string, error)
	TimeOfDay(path string) (string, error)
	Money(path string) (decimal.Decimal, error)
}

// Values is a request-scoped, read-only Store backed by a flat map. The map is
// loaded once from the platform's configuration storage and never mutated.
type Values map[string]any

var _ Store = Values{}

func (v Values) Has(path string) bool {
	_, ok := v[path]
	return ok
}

func (v Values) String(path string) (string, error) {
	raw, ok := v[path]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", shapeError(path, "string", raw)
	}
	return s, nil
}

func (v Values) Bool(path string) (bool, error) {
	raw, ok := v[path]
	if !ok || raw == nil {
		return false, nil
	}
	switch val := raw.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.TrimSpace(val) {
		case "1", "true":
			return true, nil
		case "0", "false", "":
			return false, nil
		}
		return false, shapeError(path, "bool", raw)
	case int:
		return val != 0, nil
	case float64:
		return val != 0, nil
	default:
		return false, shapeError(path, "bool", raw)
	}
}

func (v Values) Int(path string) (int, error) {
	raw, ok := v[path]
	if !ok || raw == nil {
		return 0, nil
	}
	switch val := raw.(type) {
	case int:
		return val, nil
	case float64:
		if val != float64(int(val)) {
			return 0, shapeError(path, "int", raw)
		}
		return int(val), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, shapeError(path, "int", raw)
		}
		return parsed, nil
	default:
		return 0, shapeError(path, "int", raw)
	}
}

// StringSlice reads a comma-separated value, the storage format for
// multi-select options like allowed drop-off days.
func (v Values) StringSlice(path string) ([]string, error) {
	raw, ok := v[path]
	if !ok || raw == nil {
		return nil, nil
	}
	switch val := raw.(type) {
	case []string:
		return val, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, shapeError(path, "string list", raw)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, shapeError(path, "string list", raw)
	}
}

// TimeOfDay reads a wall-clock value and normalizes it to "HH:MM".
func (v Values) TimeOfDay(path string) (string, error) {
	s, err := v.String(path)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, parseErr := time.Parse(layout, s); parseErr == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", shapeError(path, "time of day", s)
}

func (v Values) Money(path string) (decimal.Decimal, error) {
	raw, ok := v[path]
	if !ok || raw == nil {
		return decimal.Zero, nil
	}
	switch val := raw.(type) {
	case decimal.Decimal:
		return val, nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, shapeError(path, "money amount", raw)
		}
		return parsed, nil
	default:
		return decimal.Zero, shapeError(path, "money amount", raw)
	}
}

func shapeError(path, want string, got any) error {
	return pkgerrors.Newf(pkgerrors.CodeConfig,
		"setting %s: expected %s, got %s", path, want, fmt.Sprintf("%T", got))
}
