/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import "strings"

// normalizeArgs rewrites the argument forms pflag cannot express:
//
//	-d Arduino ESP      ->  --device=Arduino --device=ESP
//	-ep [device]        ->  --enable-port[=device]
//	-e device           ->  --enable-port=device
//
// Everything after "--" is left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--":
			return append(out, args[i:]...)
		case "-d", "--device":
			j := i + 1
			for ; j < len(args) && isValue(args[j]); j++ {
				out = append(out, "--device="+args[j])
			}
			i = j - 1
		case "-e", "-ep", "--enable-port":
			if i+1 < len(args) && isValue(args[i+1]) {
				out = append(out, "--enable-port="+args[i+1])
				i++
				continue
			}
			out = append(out, "--enable-port")
		default:
			if value, ok := strings.CutPrefix(arg, "-ep="); ok {
				out = append(out, "--enable-port="+value)
				continue
			}
			out = append(out, arg)
		}
	}
	return out
}

// isValue reports whether arg is a flag value rather than a flag or a
// subcommand.
func isValue(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == arg || c.HasAlias(arg) {
			return false
		}
	}
	return true
}
