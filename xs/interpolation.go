package xs

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Interpolation is a two-point interpolation law.
type Interpolation int

// Supported laws.
const (
	LinLin Interpolation = iota
	LinLog
	LogLin
	LogLog
)

var interpolationNames = [...]string{"lin-lin", "lin-log", "log-lin", "log-log"}

// String returns the "x-y" token.
func (i Interpolation) String() string {
	if i < 0 || int(i) >= len(interpolationNames) {
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}

	return interpolationNames[i]
}

// ParseInterpolation maps a token such as "log-log" to its law. The empty
// string is lin-lin.
func ParseInterpolation(s string) (Interpolation, error) {
	if s == "" {
		return LinLin, nil
	}
	for i, n := range interpolationNames {
		if n == s {
			return Interpolation(i), nil
		}
	}

	return LinLin, fmt.Errorf("ParseInterpolation(%q): %w", s, ErrUnknownInterpolation)
}

// MarshalYAML writes the token form.
func (i Interpolation) MarshalYAML() (interface{}, error) { return i.String(), nil }

// UnmarshalYAML reads the token form.
func (i *Interpolation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseInterpolation(s)
	if err != nil {
		return err
	}
	*i = v

	return nil
}

func (i Interpolation) logX() bool { return i == LogLin || i == LogLog }
func (i Interpolation) logY() bool { return i == LinLog || i == LogLog }

// Interpolate evaluates the law between (x1, y1) and (x2, y2) at x.
func Interpolate(law Interpolation, x1, y1, x2, y2, x float64) (float64, error) {
	if x == x1 {
		return y1, nil
	}
	if x == x2 {
		return y2, nil
	}
	if x1 == x2 {
		return y1, nil
	}
	if law.logX() && (x1 <= 0 || x2 <= 0 || x <= 0) {
		return 0, xsErrorf("Interpolate", ErrInvalidInterpolation)
	}
	if law.logY() && (y1 <= 0 || y2 <= 0) {
		return 0, xsErrorf("Interpolate", ErrInvalidInterpolation)
	}

	var t float64
	if law.logX() {
		t = math.Log(x/x1) / math.Log(x2/x1)
	} else {
		t = (x - x1) / (x2 - x1)
	}
	if law.logY() {
		return y1 * math.Pow(y2/y1, t), nil
	}

	return y1 + t*(y2-y1), nil
}
