package utils

import (
	"bytes"
)

// ToCmdLine builds a command line from string arguments.
func ToCmdLine(cmd ...string) [][]byte {
	args := make([][]byte, len(cmd))
	for i, s := range cmd {
		args[i] = []byte(s)
	}
	return args
}

// ToCmdLine2 builds a command line from a name and string arguments.
func ToCmdLine2(name string, args ...string) [][]byte {
	result := make([][]byte, len(args)+1)
	result[0] = []byte(name)
	for i, s := range args {
		result[i+1] = []byte(s)
	}
	return result
}

// ToCmdLine3 builds a command line from a name and byte slice arguments.
func ToCmdLine3(name string, args ...[]byte) [][]byte {
	result := make([][]byte, len(args)+1)
	result[0] = []byte(name)
	for i, s := range args {
		result[i+1] = s
	}
	return result
}

func Equals(a any, b any) bool {
	b1, ok1 := a.([]byte)
	b2, ok2 := b.([]byte)
	if ok1 && ok2 {
		return bytes.Equal(b1, b2)
	}
	return a == b
}
