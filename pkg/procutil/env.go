package procutil

import (
	"os"
	"strings"
)

type EnvVar string

const (
	// NSRESOLVER_LOG_LEVEL overrides the log level of the command line tool.
	NSRESOLVER_LOG_LEVEL EnvVar = "NSRESOLVER_LOG_LEVEL"
	// NSRESOLVER_DEBUG turns on debug logging when set to a true value.
	NSRESOLVER_DEBUG EnvVar = "NSRESOLVER_DEBUG"
	// NSRESOLVER_CONFIG names an explicit config file.
	NSRESOLVER_CONFIG EnvVar = "NSRESOLVER_CONFIG"
)

func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(val) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

func LookupEnv(name EnvVar) (string, bool) {
	return os.LookupEnv(string(name))
}
