package cstar

import (
	"regexp"
	"strings"
)

// argumentIdentifiers mark a program that reads its command line.
var argumentIdentifiers = []string{"argc", "argv", "args"}

// mentionsArgs is a plain substring test; "margs" or "argvec" count too.
func mentionsArgs(text string) bool {
	for _, id := range argumentIdentifiers {
		if strings.Contains(text, id) {
			return true
		}
	}
	return false
}

// runtimeKeywords are the names the stdcstar runtime header provides, in
// reporting priority order.
var runtimeKeywords = []string{
	"usingfunc",
	"integerfunc",
	"mainfunc",
	"returnf",
	"System.out.println",
	"cstar25::pinput",
	"cpp20::println",
	"Console.WriteLine",
	"Console.ReadLine",
	"delay.ms",
	"getArgs",
	"rtrn",
	"integer",
	"eightbyte",
	"ULLI",
	"LLI",
	"str",
	"var",
	"def",
}

var keywordPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(runtimeKeywords))
	for i, kw := range runtimeKeywords {
		out[i] = regexp.MustCompile(`(^|[^\w.:])` + regexp.QuoteMeta(kw) + `($|\W)`)
	}
	return out
}()

// firstKeyword returns the highest-priority runtime keyword on the line.
func firstKeyword(text string) (string, bool) {
	for i, re := range keywordPatterns {
		if re.MatchString(text) {
			return runtimeKeywords[i], true
		}
	}
	return "", false
}
