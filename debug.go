package rapidyaml

import "os"

// strict, when true, causes contract violations that would otherwise
// return an error (None id where a live id is required, mutating a
// released slot) to panic instead, matching the reference implementation's
// assert-and-abort behavior. Off by default; test harnesses that want
// fail-fast behavior can enable it with SetStrict or the RAPIDYAML_STRICT
// environment variable.
var strict = boolEnv("RAPIDYAML_STRICT")

// SetStrict toggles strict mode process-wide. Intended for test harnesses,
// not for production callers, which should handle the returned errors.
func SetStrict(v bool) {
	strict = v
}

func boolEnv(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	switch v {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func fail(err error) error {
	if strict {
		panic(err)
	}
	return err
}
