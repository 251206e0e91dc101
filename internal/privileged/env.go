// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package privileged

import (
	"os"
	"strings"
)

// dangerousEnvVars alter how the shell or the dynamic linker behaves and are
// removed before the privileged child starts.
var dangerousEnvVars = map[string]bool{
	"ENV":               true,
	"BASH_ENV":          true,
	"IFS":               true,
	"CDPATH":            true,
	"PROMPT_COMMAND":    true,
	"SHELLOPTS":         true,
	"BASHOPTS":          true,
	"PS4":               true,
	"ZDOTDIR":           true,
	"GLOBIGNORE":        true,
	"PERL5OPT":          true,
	"PYTHONSTARTUP":     true,
	"SUDO_ASKPASS":      true,
	"SUDO_PROMPT":       true,
	"NODE_OPTIONS":      true,
	"RUBYOPT":           true,
	"JAVA_TOOL_OPTIONS": true,
}

var dangerousPrefixes = []string{"LD_", "DYLD_", "BASH_FUNC_"}

// sanitizeEnvironment filters env, dropping variables that could inject
// code into the shell, sudo, or the target command.
func sanitizeEnvironment(env []string) []string {
	result := make([]string, 0, len(env))
	for _, kv := range env {
		idx := strings.Index(kv, "=")
		if idx <= 0 {
			continue
		}
		key := strings.ToUpper(kv[:idx])
		if dangerousEnvVars[key] || hasDangerousPrefix(key) {
			continue
		}
		result = append(result, kv)
	}
	return result
}

func hasDangerousPrefix(key string) bool {
	for _, p := range dangerousPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// getEnviron returns the current environment (abstracted for testing).
var getEnviron = func() []string {
	return os.Environ()
}
