package bif

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(unary1("upper case", [][]string{{"string"}}, upperCaseCore))
	register(unary1("lower case", [][]string{{"string"}}, lowerCaseCore))
	register(unary1("substring", [][]string{{"string", "start position"}, {"string", "start position", "length"}}, substringCore))
	register(unary1("substring before", [][]string{{"string", "match"}}, substringBeforeCore))
	register(unary1("substring after", [][]string{{"string", "match"}}, substringAfterCore))
	register(unary1("contains", [][]string{{"string", "match"}}, containsCore))
	register(unary1("starts with", [][]string{{"string", "match"}}, startsWithCore))
	register(unary1("ends with", [][]string{{"string", "match"}}, endsWithCore))
	register(unary1("string length", [][]string{{"string"}}, stringLengthCore))
	register(unary1("matches", [][]string{{"input", "pattern"}, {"input", "pattern", "flags"}}, matchesCore))
	register(unary1("replace", [][]string{{"input", "pattern", "replacement"}, {"input", "pattern", "replacement", "flags"}}, replaceCore))
	register(unary1("split", [][]string{{"string", "delimiter"}}, splitCore))
}

func upperCaseCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	s, ok := asStr(args[0])
	if !ok {
		return invalidType("upper case", "string", args[0])
	}
	return value.Str{V: strings.ToUpper(s.V)}
}

func lowerCaseCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	s, ok := asStr(args[0])
	if !ok {
		return invalidType("lower case", "string", args[0])
	}
	return value.Str{V: strings.ToLower(s.V)}
}

// substringCore uses 1-based, possibly-negative indexing (negative counts
// from the end of the string).
func substringCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 3); !ok {
		return errv
	}
	s, ok := asStr(args[0])
	if !ok {
		return invalidType("substring", "string", args[0])
	}
	pos, ok := asNumber(args[1])
	if !ok {
		return invalidType("substring", "number", args[1])
	}
	runes := []rune(s.V)
	n := len(runes)
	start := int(pos.D.Int64())
	if start < 0 {
		start = n + start + 1
	}
	if start < 1 {
		start = 1
	}
	if start > n+1 {
		return value.Str{V: ""}
	}
	length := n - start + 1
	if len(args) == 3 {
		l, ok := asNumber(args[2])
		if !ok {
			return invalidType("substring", "number", args[2])
		}
		length = int(l.D.Int64())
	}
	end := start + length - 1
	if end > n {
		end = n
	}
	if end < start {
		return value.Str{V: ""}
	}
	return value.Str{V: string(runes[start-1 : end])}
}

func substringBeforeCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	s, ok1 := asStr(args[0])
	m, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("substring before", "string", args[0])
	}
	idx := strings.Index(s.V, m.V)
	if idx < 0 {
		return value.Str{V: ""}
	}
	return value.Str{V: s.V[:idx]}
}

func substringAfterCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	s, ok1 := asStr(args[0])
	m, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("substring after", "string", args[0])
	}
	idx := strings.Index(s.V, m.V)
	if idx < 0 {
		return value.Str{V: ""}
	}
	return value.Str{V: s.V[idx+len(m.V):]}
}

func containsCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	s, ok1 := asStr(args[0])
	m, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("contains", "string", args[0])
	}
	return value.Boolean{V: strings.Contains(s.V, m.V)}
}

func startsWithCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	s, ok1 := asStr(args[0])
	m, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("starts with", "string", args[0])
	}
	return value.Boolean{V: strings.HasPrefix(s.V, m.V)}
}

func endsWithCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	s, ok1 := asStr(args[0])
	m, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("ends with", "string", args[0])
	}
	return value.Boolean{V: strings.HasSuffix(s.V, m.V)}
}

func stringLengthCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	s, ok := asStr(args[0])
	if !ok {
		return invalidType("string length", "string", args[0])
	}
	return value.NumberFromInt64(int64(len([]rune(s.V))))
}

// feelRegexpOptions maps the XPath-subset `flags` string ("s", "m", "i", "x")
// to regexp2's option bitmask.
func feelRegexpOptions(flags string) regexp2.RegexOptions {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 's':
			opts |= regexp2.Singleline
		case 'm':
			opts |= regexp2.Multiline
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		}
	}
	return opts
}

func matchesCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 3); !ok {
		return errv
	}
	input, ok1 := asStr(args[0])
	pattern, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("matches", "string", args[0])
	}
	flags := ""
	if len(args) == 3 {
		f, ok := asStr(args[2])
		if !ok {
			return invalidType("matches", "string", args[2])
		}
		flags = f.V
	}
	re, err := regexp2.Compile(pattern.V, feelRegexpOptions(flags))
	if err != nil {
		return value.NullOf("[core::matches] invalid regular expression '%s'", pattern.V)
	}
	matched, err := re.MatchString(input.V)
	if err != nil {
		return value.NullOf("[core::matches] regular expression evaluation failed")
	}
	return value.Boolean{V: matched}
}

func replaceCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 3, 4); !ok {
		return errv
	}
	input, ok1 := asStr(args[0])
	pattern, ok2 := asStr(args[1])
	replacement, ok3 := asStr(args[2])
	if !ok1 || !ok2 || !ok3 {
		return invalidType("replace", "string", args[0])
	}
	flags := ""
	if len(args) == 4 {
		f, ok := asStr(args[3])
		if !ok {
			return invalidType("replace", "string", args[3])
		}
		flags = f.V
	}
	re, err := regexp2.Compile(pattern.V, feelRegexpOptions(flags))
	if err != nil {
		return value.NullOf("[core::replace] invalid regular expression '%s'", pattern.V)
	}
	out, err := re.Replace(input.V, feelReplacementSyntax(replacement.V), -1, -1)
	if err != nil {
		return value.NullOf("[core::replace] regular expression evaluation failed")
	}
	return value.Str{V: out}
}

// feelReplacementSyntax rewrites FEEL/XPath `$1`-style group references into
// the `${1}` syntax regexp2.Replace expects.
func feelReplacementSyntax(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		if repl[i] == '$' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9' {
			j := i + 1
			for j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			b.WriteString("${" + repl[i+1:j] + "}")
			i = j - 1
			continue
		}
		b.WriteByte(repl[i])
	}
	return b.String()
}

func splitCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	s, ok1 := asStr(args[0])
	delim, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return invalidType("split", "string", args[0])
	}
	re, err := regexp2.Compile(delim.V, regexp2.None)
	if err != nil {
		return value.NullOf("[core::split] invalid regular expression '%s'", delim.V)
	}
	parts := regexpSplit(re, s.V)
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Str{V: p}
	}
	return value.NewList(elems...)
}

func regexpSplit(re *regexp2.Regexp, s string) []string {
	var parts []string
	last := 0
	m, _ := re.FindStringMatch(s)
	for m != nil {
		start, length := m.Index, m.Length
		if length == 0 {
			m, _ = re.FindNextMatch(m)
			continue
		}
		parts = append(parts, s[last:start])
		last = start + length
		m, _ = re.FindNextMatch(m)
	}
	parts = append(parts, s[last:])
	return parts
}
