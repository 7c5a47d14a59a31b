package util

import (
	"os"
	"path/filepath"
	"runtime"
	. "unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func LogMemory(log logrus.FieldLogger) {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	log.WithFields(logrus.Fields{
		"alloc":       s.Alloc,
		"mallocs":     s.Mallocs,
		"frees":       s.Frees,
		"heapAlloc":   s.HeapAlloc,
		"heapObjects": s.HeapObjects,
		"stackInuse":  s.StackInuse,
	}).Debug("Memory info")
}

type RuneTester func(r rune) bool

func TestEach(t RuneTester, s string) byte {
	for i, w := 0, 0; i < len(s); i += w {
		runeValue, width := utf8.DecodeRuneInString(s[i:])
		if t(runeValue) {
			return 't'
		}
		w = width
	}
	return 'f'
}

var Testers = []RuneTester{
	IsDigit,
	IsGraphic,
	IsLetter,
	IsLower,
	IsMark,
	IsNumber,
	IsPunct,
	IsSymbol,
	IsTitle,
	IsUpper,
}

// Signature encodes which character classes occur in s, one 't'/'f' byte per
// tester in Testers.
func Signature(s string) string {
	indicators := make([]byte, len(Testers))
	for i, t := range Testers {
		indicators[i] = TestEach(t, s)
	}
	return string(indicators)
}

func Prefix(s string, n int) string {
	return s[0:Min(len(s), n)]
}

func Suffix(s string, n int) string {
	return s[Max(len(s)-n, 0):len(s)]
}

// LocateFile returns the first existing path among name itself and name
// joined to each of dirs.
func LocateFile(name string, dirs []string) (string, bool) {
	if len(name) == 0 {
		return "", false
	}
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
