// Package flagx lets several loaders share os.Args without tripping over
// each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (plus their values) from
// args. Both "-f value" and "-f=value" forms are recognised. A following
// argument that starts with "-" is never treated as a value.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		known[name] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if known[name] {
				out = append(out, arg)
			}
			continue
		}

		if !known[arg] {
			continue
		}
		out = append(out, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			out = append(out, args[next])
			i = next
		}
	}
	return out
}

// lookupPath extracts a single string flag registered under all names.
func lookupPath(args []string, names ...string) string {
	allowed := make([]string, 0, len(names)*2)
	for _, n := range names {
		allowed = append(allowed, "-"+n, "--"+n)
	}

	var path string
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&path, n, "", "")
	}
	_ = fs.Parse(FilterArgs(args, allowed))
	return path
}

// ConfigFilePath returns the JSON config path given via -c or -config, or "".
func ConfigFilePath(args []string) string {
	return lookupPath(args, "c", "config")
}

// EnvFilePath returns the dotenv path given via -e or -env-file, or "".
func EnvFilePath(args []string) string {
	return lookupPath(args, "e", "env-file")
}
